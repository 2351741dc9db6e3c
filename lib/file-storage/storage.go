package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Kind string

const (
	ProfileImage Kind = "profile"
	ProjectImage Kind = "project"
)

// ObjectStore часть API minio.Client, которая используется хранилищем
type ObjectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketPolicy(ctx context.Context, bucketName, policy string) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type Bucket struct {
	Name      string
	MaxSizeMB int64
}

type Config struct {
	PublicURL string
	Buckets   map[Kind]Bucket
}

type Provider interface {
	MakeBuckets(ctx context.Context) error
	UploadImage(ctx context.Context, kind Kind, ownerID string, file ImageFile) (url string, hMsg string, err error)
}

type ImageFile struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

var Instance Provider

func NewHandler(store ObjectStore, cfg Config) {
	Instance = NewInstance(store, cfg)
}

func NewInstance(store ObjectStore, cfg Config) Provider {
	return &impl{
		store: store,
		cfg:   cfg,
	}
}

type impl struct {
	store ObjectStore
	cfg   Config
}

const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

func (i impl) MakeBuckets(ctx context.Context) error {
	location := "us-east-1"
	for _, bucket := range i.cfg.Buckets {
		exists, err := i.store.BucketExists(ctx, bucket.Name)
		if err != nil {
			return errors.Wrapf(err, "ошибка проверки бакета %v", bucket.Name)
		}
		if exists {
			continue
		}
		err = i.store.MakeBucket(ctx, bucket.Name, minio.MakeBucketOptions{Region: location})
		if err != nil {
			return errors.Wrapf(err, "ошибка создания бакета %v", bucket.Name)
		}
		err = i.store.SetBucketPolicy(ctx, bucket.Name, fmt.Sprintf(publicReadPolicy, bucket.Name))
		if err != nil {
			return errors.Wrapf(err, "ошибка установки политики бакета %v", bucket.Name)
		}
		log.WithField("bucket", bucket.Name).Info("создан бакет")
	}
	return nil
}

func (i impl) UploadImage(ctx context.Context, kind Kind, ownerID string, file ImageFile) (string, string, error) {
	bucket, ok := i.cfg.Buckets[kind]
	if !ok {
		return "", "", errors.Errorf("неизвестный тип файла: %v", kind)
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return "", "допускается загрузка только изображений", nil
	}
	if file.Size <= 0 {
		return "", "пустой файл", nil
	}
	if file.Size > bucket.MaxSizeMB*1024*1024 {
		return "", fmt.Sprintf("размер файла превышает %v МБ", bucket.MaxSizeMB), nil
	}
	objectName := fmt.Sprintf("%v/%v%v", ownerID, uuid.New().String(), strings.ToLower(path.Ext(file.FileName)))
	_, err := i.store.PutObject(ctx, bucket.Name, objectName, file.Reader, file.Size, minio.PutObjectOptions{ContentType: file.ContentType})
	if err != nil {
		log.
			WithField("bucket", bucket.Name).
			WithField("owner_id", ownerID).
			WithError(err).
			Error("ошибка загрузки файла в S3")
		return "", "", errors.Wrap(err, "ошибка загрузки файла")
	}
	return i.publicURL(bucket.Name, objectName), "", nil
}

func (i impl) publicURL(bucketName, objectName string) string {
	return fmt.Sprintf("%v/%v/%v", strings.TrimRight(i.cfg.PublicURL, "/"), bucketName, objectName)
}
