package filestorage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	buckets  map[string]bool
	policies map[string]string
	objects  map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{buckets: map[string]bool{}, policies: map[string]string{}, objects: map[string]string{}}
}

func (f *fakeStore) BucketExists(_ context.Context, bucketName string) (bool, error) {
	return f.buckets[bucketName], nil
}

func (f *fakeStore) MakeBucket(_ context.Context, bucketName string, _ minio.MakeBucketOptions) error {
	f.buckets[bucketName] = true
	return nil
}

func (f *fakeStore) SetBucketPolicy(_ context.Context, bucketName, policy string) error {
	f.policies[bucketName] = policy
	return nil
}

func (f *fakeStore) PutObject(_ context.Context, bucketName, objectName string, reader io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[bucketName+"/"+objectName] = opts.ContentType + ":" + string(body)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName}, nil
}

func TestStorage(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.buckets["profile-images"] = true
	handler := NewInstance(store, Config{
		PublicURL: "http://cdn.local/",
		Buckets: map[Kind]Bucket{
			ProfileImage: {Name: "profile-images", MaxSizeMB: 5},
			ProjectImage: {Name: "project-images", MaxSizeMB: 10},
		},
	})

	t.Run("создаются только отсутствующие бакеты", func(t *testing.T) {
		require.NoError(t, handler.MakeBuckets(ctx))
		require.True(t, store.buckets["project-images"])
		require.Contains(t, store.policies["project-images"], "arn:aws:s3:::project-images/*")
		require.NotContains(t, store.policies, "profile-images")
	})

	t.Run("загрузка изображения", func(t *testing.T) {
		url, hMsg, err := handler.UploadImage(ctx, ProfileImage, "user-1", ImageFile{
			FileName:    "Avatar.PNG",
			ContentType: "image/png",
			Size:        3,
			Reader:      strings.NewReader("png"),
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.True(t, strings.HasPrefix(url, "http://cdn.local/profile-images/user-1/"))
		require.True(t, strings.HasSuffix(url, ".png"))
		key := strings.TrimPrefix(url, "http://cdn.local/")
		require.Equal(t, "image/png:png", store.objects[key])
	})

	t.Run("не изображение", func(t *testing.T) {
		_, hMsg, err := handler.UploadImage(ctx, ProjectImage, "user-1", ImageFile{ContentType: "application/pdf", Size: 1, Reader: strings.NewReader("x")})
		require.NoError(t, err)
		require.Equal(t, "допускается загрузка только изображений", hMsg)
	})

	t.Run("превышен размер", func(t *testing.T) {
		_, hMsg, err := handler.UploadImage(ctx, ProfileImage, "user-1", ImageFile{ContentType: "image/jpeg", Size: 5*1024*1024 + 1, Reader: strings.NewReader("x")})
		require.NoError(t, err)
		require.Equal(t, "размер файла превышает 5 МБ", hMsg)

		_, hMsg, err = handler.UploadImage(ctx, ProjectImage, "user-1", ImageFile{ContentType: "image/jpeg", Size: 5*1024*1024 + 1, Reader: strings.NewReader("x")})
		require.NoError(t, err)
		require.Empty(t, hMsg)
	})
}
