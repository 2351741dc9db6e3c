package middleware

import (
	"staff-portal-backend/fiberlog"
	"staff-portal-backend/lib/profiles"
	authutils "staff-portal-backend/lib/utils/auth-utils"
	apimodels "staff-portal-backend/models/api"
	dbmodels "staff-portal-backend/models/db"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const profileLocalsKey = "profile"

// ProfileRequired загружает (при первом входе создает) профиль текущего пользователя
func ProfileRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		identity := authutils.GetIdentity(ctx)
		if identity.ID == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		}
		profile, err := profiles.Instance.EnsureProfile(ctx.UserContext(), identity)
		if err != nil {
			log.
				WithField("user_id", identity.ID).
				WithError(err).
				Error("ошибка получения профиля пользователя")
			return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("не удалось получить профиль пользователя"))
		}
		if !profile.IsActive {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("учетная запись отключена"))
		}
		ctx.Locals(profileLocalsKey, profile)
		ctx.Locals(fiberlog.TagUserID, profile.ID)
		return ctx.Next()
	}
}

func GetUser(ctx *fiber.Ctx) dbmodels.Profile {
	profile, _ := ctx.Locals(profileLocalsKey).(dbmodels.Profile)
	return profile
}
