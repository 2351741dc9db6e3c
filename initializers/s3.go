package initializers

import (
	"context"

	"staff-portal-backend/config"
	filestorage "staff-portal-backend/lib/file-storage"
	s3client "staff-portal-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	minioClient, err := s3client.NewClient(s3client.Config{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	filestorage.NewHandler(minioClient, filestorage.Config{
		PublicURL: config.Conf.S3.PublicURL,
		Buckets: map[filestorage.Kind]filestorage.Bucket{
			filestorage.ProfileImage: {Name: config.Conf.S3.ProfileBucket, MaxSizeMB: config.Conf.S3.ProfileMaxSizeMB},
			filestorage.ProjectImage: {Name: config.Conf.S3.ProjectBucket, MaxSizeMB: config.Conf.S3.ProjectMaxSizeMB},
		},
	})
	// Проверка соединения и создание бакетов
	if err = filestorage.Instance.MakeBuckets(ctx); err != nil {
		log.WithError(err).Error("S3 соединение не удалось, бакеты не созданы")
		return
	}
	log.Info("S3 клиент успешно инициализирован")
}
