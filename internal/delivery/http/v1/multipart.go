package v1

import (
	"mime/multipart"
	"net/http"

	"greencart/internal/usecase"
	"greencart/pkg/logger"
	"greencart/pkg/utils"
)

// formFiles opens the files uploaded under field. The returned func closes
// them and must be called once the uploads are consumed.
func formFiles(r *http.Request, field string) ([]usecase.ImageUpload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	if r.MultipartForm == nil {
		return nil, closeAll, nil
	}

	headers := r.MultipartForm.File[field]
	uploads := make([]usecase.ImageUpload, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		uploads = append(uploads, usecase.ImageUpload{
			Filename:    h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Body:        f,
		})
	}
	return uploads, closeAll, nil
}

// parseMultipart bounds and parses a multipart body, replying 400 on failure.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		logger.WithContext(r.Context()).Warn().Err(err).Msg("ParseMultipartForm failed")
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return false
	}
	return true
}
