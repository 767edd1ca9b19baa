package usecase

import (
	"context"
	"io"

	"greencart/internal/domain"
	"greencart/pkg/utils"
)

// ImageUpload is one file taken from a multipart form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// storeImage resizes, re-encodes and uploads a single image.
func storeImage(ctx context.Context, store domain.ImageStore, img ImageUpload, maxWidth int) (string, error) {
	if store == nil {
		return "", domain.Errorf(domain.ErrUnavailable, "Image uploads are not configured")
	}
	if !utils.IsAllowedImage(img.ContentType, img.Filename) {
		return "", domain.Errorf(domain.ErrInvalidInput, "Unsupported image type: %s", img.Filename)
	}

	data, contentType, err := utils.ProcessImage(img.Body, img.Filename, maxWidth)
	if err != nil {
		return "", domain.Errorf(domain.ErrInvalidInput, "Could not read image %s", img.Filename)
	}
	return store.UploadBuffer(ctx, data, contentType)
}
