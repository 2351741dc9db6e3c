package db

import (
	"context"
	"staff-portal-backend/config"
	profilestore "staff-portal-backend/lib/profiles/store"
	"staff-portal-backend/lib/remote"
	"staff-portal-backend/models"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	promoteSuperAdmin()
}

// promoteSuperAdmin назначает роль суперадмина профилю с почтой из настроек.
// Если профиля еще нет, роль будет выдана при первом входе.
func promoteSuperAdmin() {
	email := config.Conf.Admin.Email
	if email == "" {
		log.Warn("суперадмин не назначен, отсутвует настройка ADMIN_EMAIL")
		return
	}
	store := profilestore.NewInstance(remote.NewInstance(DB))
	ctx := context.Background()
	rec, err := store.GetByEmail(ctx, email)
	if err != nil {
		log.WithError(err).Error("ошибка назначения суперадмина")
		return
	}
	if rec == nil || rec.Role == models.SuperAdminRole {
		return
	}
	updMap := map[string]interface{}{
		"role": models.SuperAdminRole,
	}
	if err = store.Update(ctx, rec.ID, updMap); err != nil {
		log.WithError(err).Error("ошибка назначения суперадмина")
		return
	}
	log.WithField("email", email).Info("профилю назначена роль суперадмина")
}
