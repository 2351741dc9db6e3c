package remotetest

import (
	"testing"
	"time"

	"staff-portal-backend/lib/remote"
	dbmodels "staff-portal-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteClient remote.Client поверх in-memory SQLite со всеми таблицами
func NewSQLiteClient(t testing.TB) remote.Client {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	err = db.AutoMigrate(&dbmodels.Profile{}, &dbmodels.LeaveRequest{}, &dbmodels.Task{},
		&dbmodels.Announcement{}, &dbmodels.ProjectUpdate{})
	require.NoError(t, err)
	return remote.NewInstance(db)
}
