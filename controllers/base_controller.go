package controllers

import (
	"strings"

	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/visibility"
	"staff-portal-backend/middleware"
	apimodels "staff-portal-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) QueryParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.QueryParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания параметров запроса")
		return errors.New("некорректные параметры запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(ctx.Params("id"))
	if id == "" {
		return "", errors.New("не указан идентификатор")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("user_id", middleware.GetUser(ctx).ID).
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError ответ с ошибкой, статус определяется по типу ошибки
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	switch {
	case errors.Is(err, visibility.ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	case remote.IsNotFound(err):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("запись не найдена"))
	case remote.IsTimeout(err):
		logger.WithError(err).Error(msg)
		return ctx.Status(fiber.StatusGatewayTimeout).JSON(apimodels.NewError(msg))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

// SendHumanError ответ 400 с сообщением для пользователя
func (c *BaseAPIController) SendHumanError(ctx *fiber.Ctx, hMsg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
}
