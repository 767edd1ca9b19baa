package utils

import (
	"bytes"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"path/filepath"
	"strings"

	"greencart/pkg/logger"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	ProductImageMaxWidth = 1600
	AvatarMaxWidth       = 512
)

var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".gif":  true,
	}
)

// IsAllowedImage checks both the declared MIME type and the file extension.
func IsAllowedImage(contentType, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedMimeTypes[contentType] && allowedExtensions[ext]
}

// ProcessImage decodes an upload, shrinks it to maxWidth and re-encodes it
// as WebP (JPEG when the WebP encoder fails).
func ProcessImage(r io.Reader, filename string, maxWidth int) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	logger.Get().Debug().Str("file", filename).Str("format", format).Msg("Processing image")

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	err = webp.Encode(&buf, img, &webp.Options{
		Lossless: false,
		Quality:  85,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("WebP encoding failed, falling back to JPEG")
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}

	return buf.Bytes(), "image/webp", nil
}
