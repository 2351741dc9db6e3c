package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/visibility"
	apimodels "staff-portal-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSendError(t *testing.T) {
	c := BaseAPIController{}
	app := fiber.New()
	send := func(err error) fiber.Handler {
		return func(ctx *fiber.Ctx) error {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения данных")
		}
	}
	app.Get("/forbidden", send(errors.Wrap(visibility.ErrForbidden, "задача")))
	app.Get("/not_found", send(remote.NewError("нет записи", remote.CodeNoRows)))
	app.Get("/timeout", send(errors.Wrap(remote.NewError("таймаут", remote.CodeTimeout), "профиль")))
	app.Get("/internal", send(errors.New("connection refused")))
	app.Get("/human", func(ctx *fiber.Ctx) error { return c.SendHumanError(ctx, "отчет не найден") })
	app.Get("/item/:id", func(ctx *fiber.Ctx) error {
		id, err := c.GetID(ctx)
		if err != nil {
			return c.SendHumanError(ctx, err.Error())
		}
		return ctx.SendString(id)
	})

	call := func(path string) (int, apimodels.Response) {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		result := apimodels.Response{}
		_ = json.Unmarshal(body, &result)
		return resp.StatusCode, result
	}

	status, body := call("/forbidden")
	require.Equal(t, fiber.StatusForbidden, status)
	require.Equal(t, "fail", body.Status)

	status, _ = call("/not_found")
	require.Equal(t, fiber.StatusNotFound, status)

	status, body = call("/timeout")
	require.Equal(t, fiber.StatusGatewayTimeout, status)
	require.Equal(t, "Ошибка получения данных", body.Message)

	status, body = call("/internal")
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, "Ошибка получения данных", body.Message)

	status, body = call("/human")
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "отчет не найден", body.Message)

	status, _ = call("/item/42")
	require.Equal(t, fiber.StatusOK, status)
}
