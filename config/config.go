package config

import (
	"os"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		BodyLimit  int    `default:"20971520" env:"APP_BODY_LIMIT"`
		// FontDir каталог с Arial.ttf для выгрузки в pdf
		FontDir  string `default:"static/font/" env:"APP_FONT_DIR"`
		LogLevel string `default:"info" env:"APP_LOG_LEVEL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"staff-portal" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret string `default:"" env:"AUTH_JWT_SECRET"`
		// ProfileFetchTimeoutSec ограничение на получение/создание профиля при входе
		ProfileFetchTimeoutSec int `default:"30" env:"AUTH_PROFILE_FETCH_TIMEOUT_SEC"`
	}
	Cache struct {
		DefaultTTLSec    int `default:"300" env:"CACHE_DEFAULT_TTL_SEC"`
		RealtimeTTLSec   int `default:"60" env:"CACHE_REALTIME_TTL_SEC"`
		SweepIntervalSec int `default:"600" env:"CACHE_SWEEP_INTERVAL_SEC"`
	}
	S3 struct {
		Endpoint         string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID      string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey  string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL           *bool  `default:"false" env:"S3_USE_SSL"`
		PublicURL        string `default:"http://127.0.0.1:9000" env:"S3_PUBLIC_URL"`
		ProfileBucket    string `default:"profile-images" env:"S3_PROFILE_BUCKET"`
		ProfileMaxSizeMB int64  `default:"5" env:"S3_PROFILE_MAX_SIZE_MB"`
		ProjectBucket    string `default:"project-images" env:"S3_PROJECT_BUCKET"`
		ProjectMaxSizeMB int64  `default:"10" env:"S3_PROJECT_MAX_SIZE_MB"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		From       string `default:"" env:"SMTP_FROM"`
	}
	Admin struct {
		Email string `default:"" env:"ADMIN_EMAIL"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	loadDotEnv()
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

// loadDotEnv переменные из .env не перекрывают уже заданные в окружении
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Warn("не удалось прочитать .env")
	}
}
