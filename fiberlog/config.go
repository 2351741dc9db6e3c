package fiberlog

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// Config настройки логирования запросов api
type Config struct {
	// Logger если не задан, используется стандартный логгер logrus
	Logger *log.Logger
	// Tags поля запроса, попадающие в лог
	Tags []string
	// Fields постоянные поля каждой записи
	Fields log.Fields
	// Next запрос не логируется, если функция вернула true
	Next func(c *fiber.Ctx) bool
}

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
	Next: skipPreflight,
}

func skipPreflight(c *fiber.Ctx) bool {
	return c.Method() == fiber.MethodOptions
}
