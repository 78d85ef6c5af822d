package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Caller identity
	case errors.Is(err, identity.ErrMissingScope), errors.Is(err, identity.ErrInvalidScope):
		Unauthorized(w, err.Error())
	case errors.Is(err, identity.ErrAccessDenied):
		Forbidden(w, err.Error())

	// Taxonomy kinds
	case errors.Is(err, apperror.ErrInvalidInput):
		Error(w, http.StatusBadRequest, apperror.Code(err), message(err), nil)
	case errors.Is(err, apperror.ErrNotFound):
		Error(w, http.StatusNotFound, apperror.Code(err), message(err), nil)
	case errors.Is(err, apperror.ErrInvalidTransition), errors.Is(err, apperror.ErrAlreadyProcessed):
		Error(w, http.StatusConflict, apperror.Code(err), message(err), nil)
	case errors.Is(err, apperror.ErrUpstreamFailure), errors.Is(err, context.DeadlineExceeded):
		Error(w, http.StatusServiceUnavailable, apperror.Code(err), "A backing service is unavailable", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

// message returns the caller-facing message of a domain error, without any wrapped driver detail.
func message(err error) string {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
