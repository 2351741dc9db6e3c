package middleware

import (
	"staff-portal-backend/config"
	authutils "staff-portal-backend/lib/utils/auth-utils"
	apimodels "staff-portal-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthorizationRequired проверка токена провайдера аутентификации, без sub запрос отклоняется
func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims:     jwt.MapClaims{},
		ContextKey: authutils.TokenLocalsKey,
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		SuccessHandler: func(ctx *fiber.Ctx) error {
			if authutils.GetIdentity(ctx).ID == "" {
				return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("некорректный токен"))
			}
			return ctx.Next()
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		},
	})
}
