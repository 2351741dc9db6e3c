package initializers

import (
	"context"
	"time"

	"staff-portal-backend/config"
	"staff-portal-backend/db"
	"staff-portal-backend/fiberlog"
	"staff-portal-backend/lib/announcements"
	"staff-portal-backend/lib/cache"
	cachesweepworker "staff-portal-backend/lib/cache/sweep-worker"
	"staff-portal-backend/lib/dataservice"
	pdfexport "staff-portal-backend/lib/export/pdf"
	xlsexport "staff-portal-backend/lib/export/xls"
	leavehandler "staff-portal-backend/lib/leave"
	"staff-portal-backend/lib/notify"
	"staff-portal-backend/lib/profiles"
	projectupdates "staff-portal-backend/lib/project-updates"
	"staff-portal-backend/lib/rbac"
	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/reports"
	"staff-portal-backend/lib/smtp"
	taskshandler "staff-portal-backend/lib/tasks"
	initchecker "staff-portal-backend/lib/utils/init-checker"

	"github.com/jonboulle/clockwork"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger(config.Conf.App.LogLevel)
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()

	client := remote.NewInstance(db.DB)
	localCache := cache.NewInstance(clockwork.NewRealClock(), cache.Config{
		DefaultTTL:  seconds(config.Conf.Cache.DefaultTTLSec),
		RealtimeTTL: seconds(config.Conf.Cache.RealtimeTTLSec),
	})
	dataservice.NewHandler(client, localCache)
	notify.NewHandler(smtp.Instance)
	profiles.NewHandler(client, dataservice.Instance, profiles.Config{
		AdminEmail:   config.Conf.Admin.Email,
		FetchTimeout: seconds(config.Conf.Auth.ProfileFetchTimeoutSec),
	})
	leavehandler.NewHandler(client, dataservice.Instance, notify.Instance)
	taskshandler.NewHandler(client, dataservice.Instance, notify.Instance)
	announcements.NewHandler(client, dataservice.Instance)
	projectupdates.NewHandler(client)
	reports.NewHandler(client)
	xlsexport.NewHandler()
	pdfexport.NewHandler(config.Conf.App.FontDir)
	rbac.NewHandler()
	initchecker.CheckInit(
		"dataservice.Instance", dataservice.Instance,
		"profiles.Instance", profiles.Instance,
		"leave.Instance", leavehandler.Instance,
		"tasks.Instance", taskshandler.Instance,
		"announcements.Instance", announcements.Instance,
		"projectupdates.Instance", projectupdates.Instance,
		"reports.Instance", reports.Instance,
		"xlsexport.Instance", xlsexport.Instance,
		"pdfexport.Instance", pdfexport.Instance,
		"rbac.Instance", rbac.Instance,
	)
	initWorkers(ctx, localCache)
}

func initWorkers(ctx context.Context, localCache cache.Provider) {
	// Задача очистки просроченных записей локального кэша
	cachesweepworker.StartWorker(ctx, localCache, seconds(config.Conf.Cache.SweepIntervalSec))
}

func seconds(value int) time.Duration {
	return time.Duration(value) * time.Second
}
