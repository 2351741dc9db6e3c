package middleware

import (
	"fmt"
	"strings"

	apimodels "staff-portal-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// WithBodyLimit ограничение размера тела запроса.
// Пути с суффиксами из skipSuffixes (загрузка файлов) проверяются по лимитам бакетов
func WithBodyLimit(limit int64, skipSuffixes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, suffix := range skipSuffixes {
			if strings.HasSuffix(c.Path(), suffix) {
				return c.Next()
			}
		}
		size := int64(c.Request().Header.ContentLength())
		if size < 0 {
			// chunked
			size = int64(len(c.Body()))
		}
		if size > limit {
			return c.Status(fiber.StatusRequestEntityTooLarge).
				JSON(apimodels.NewError(fmt.Sprintf("превышен допустимый размер запроса: %d байт", limit)))
		}
		return c.Next()
	}
}
