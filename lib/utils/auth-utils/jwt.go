package authutils

import (
	"time"

	"staff-portal-backend/config"
	profileapimodels "staff-portal-backend/models/api/profile"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenLocalsKey ключ разобранного токена в Locals
const TokenLocalsKey = "token"

// GetToken токен в формате провайдера аутентификации (sub - id пользователя, email)
func GetToken(userID, email string, ttl time.Duration) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  "authenticated",
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals(TokenLocalsKey).(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func GetIdentity(ctx *fiber.Ctx) profileapimodels.Identity {
	claims := GetClaims(ctx)
	identity := profileapimodels.Identity{}
	identity.ID, _ = claims["sub"].(string)
	identity.Email, _ = claims["email"].(string)
	return identity
}
