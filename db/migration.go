package db

import (
	dbmodels "staff-portal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Profile{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Profile")
	}
	if err := DB.AutoMigrate(&dbmodels.LeaveRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры LeaveRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.Task{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Task")
	}
	if err := DB.AutoMigrate(&dbmodels.Announcement{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Announcement")
	}
	if err := DB.AutoMigrate(&dbmodels.ProjectUpdate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ProjectUpdate")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
