package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(static log.Fields, ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields, len(static)+len(ftm))
	for k, v := range static {
		f[k] = v
	}
	for k, ft := range ftm {
		value := ft(c, d)
		if value == nil {
			continue
		}
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) == 0 {
		cfg = ConfigDefault
	} else {
		cfg = config[0]
	}
	if cfg.Next == nil {
		cfg.Next = skipPreflight
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		if cfg.Next(c) {
			return err
		}

		message := getMessage(c)
		var entity *log.Entry
		if cfg.Logger == nil {
			entity = log.WithFields(getLogrusFields(cfg.Fields, ftm, c, d))
		} else {
			entity = cfg.Logger.WithFields(getLogrusFields(cfg.Fields, ftm, c, d))
		}
		switch status := c.Response().StatusCode(); {
		case status >= fiber.StatusInternalServerError:
			entity.Error(message)
		case status >= fiber.StatusBadRequest:
			entity.Warn(message)
		default:
			entity.Info(message)
		}

		return err
	}
}

func getMessage(c *fiber.Ctx) string {
	if c.Response().StatusCode() >= fiber.StatusBadRequest {
		return "запрос api завершился ошибкой"
	}
	return "запрос api"
}
