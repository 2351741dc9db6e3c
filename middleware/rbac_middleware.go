package middleware

import (
	"staff-portal-backend/lib/rbac"
	apimodels "staff-portal-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// RbacMiddleware маршруты без правила пропускаются, доступ к данным проверяют обработчики
func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := GetUser(ctx)
		if user.ID == "" || user.Role == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("доступ запрещен"))
		}

		rule, found := rbac.Instance.Match(ctx.Method(), ctx.Path())
		if !found || rule.Allowed(user.Role) {
			return ctx.Next()
		}
		log.
			WithField("user_id", user.ID).
			WithField("role", user.Role).
			WithField("module", rule.Module).
			WithField("permission", rule.Permission).
			WithField("path", ctx.Path()).
			Debug("доступ запрещен")
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("доступ запрещен"))
	}
}
