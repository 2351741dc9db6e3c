package controllers

import (
	filestorage "staff-portal-backend/lib/file-storage"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// UploadImage загрузка изображения из multipart поля формы в хранилище
func (c *BaseAPIController) UploadImage(ctx *fiber.Ctx, field string, kind filestorage.Kind, ownerID string) (url, hMsg string, err error) {
	if filestorage.Instance == nil {
		return "", "", errors.New("хранилище файлов не инициализировано")
	}
	file, err := ctx.FormFile(field)
	if err != nil {
		return "", "не передан файл", nil
	}
	reader, err := file.Open()
	if err != nil {
		return "", "", errors.Wrap(err, "ошибка при получении файла")
	}
	defer reader.Close()
	return filestorage.Instance.UploadImage(ctx.UserContext(), kind, ownerID, filestorage.ImageFile{
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Size:        file.Size,
		Reader:      reader,
	})
}
