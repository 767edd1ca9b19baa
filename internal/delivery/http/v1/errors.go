package v1

import (
	"errors"
	"net/http"

	"greencart/internal/domain"
	"greencart/pkg/logger"
	"greencart/pkg/utils"
)

const maxJSONBody = 1 << 20

// writeDomainError maps usecase errors onto statuses. Unclassified errors
// are logged and reported generically.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}

	msg, ok := domain.Message(err)
	switch {
	case status == http.StatusInternalServerError:
		logger.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		msg = "An unexpected error occurred"
	case !ok:
		msg = http.StatusText(status)
	}
	utils.WriteError(w, status, msg)
}

// decodeBody reads a bounded JSON body into v, replying 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := utils.DecodeJSON(r.Body, v); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
