package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrUnsupportedContentType indicates a rewrite path named an unknown content type.
type ErrUnsupportedContentType struct {
	ContentType string
}

func (e *ErrUnsupportedContentType) Error() string {
	return fmt.Sprintf("unsupported content type: %s", e.ContentType)
}

// ErrInvalidBody indicates the request body could not be decoded.
type ErrInvalidBody struct {
	Cause error
}

func (e *ErrInvalidBody) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Cause)
}

func (e *ErrInvalidBody) Unwrap() error {
	return e.Cause
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts a validator error into an ErrValidation naming the first failing
// field. Other errors are wrapped as-is.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		return &ErrValidation{Field: fieldPath(fe.Namespace()), Message: msg}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

// fieldPath drops the top-level struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrUnsupportedContentType:
		return http.StatusNotFound
	case *ErrInvalidBody, *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
