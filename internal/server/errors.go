package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/resume-docgen/internal/db"
	"github.com/jonathan/resume-docgen/internal/export"
	"github.com/jonathan/resume-docgen/internal/schemas"
	"github.com/jonathan/resume-docgen/internal/source"
)

// ErrStoreUnavailable is returned by the /resumes endpoints when no database is configured.
var ErrStoreUnavailable = errors.New("resume storage is not configured")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string               `json:"error"`
	Details []schemas.FieldError `json:"details,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		schemaErr   *schemas.ValidationError
		sourceErr   *source.Error
		loadErr     *export.DataLoadError
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, db.ErrResumeNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusNotFound
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validation), errors.As(err, &sourceErr), errors.As(err, &loadErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status and writes it, with schema details when present.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		resp.Error = "resume failed schema validation"
		resp.Details = schemaErr.Errors
	}
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[server] internal error: %v", err)
		resp.Error = "document generation failed"
	}
	s.jsonResponse(w, status, resp)
}
