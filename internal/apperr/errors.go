package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a client-facing failure: the HTTP status and message are rendered as-is.
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(status int, code, message string, details any) *Error {
	return &Error{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func Validation(format string, args ...any) *Error {
	return newError(http.StatusBadRequest, "validation_error", fmt.Sprintf(format, args...), nil)
}

func TooLarge(message, details string) *Error {
	return newError(http.StatusRequestEntityTooLarge, "too_large", message, details)
}

// As unwraps err into an *Error when one is in the chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsValidation reports whether err carries a 400.
func IsValidation(err error) bool {
	e, ok := As(err)
	return ok && e.Status == http.StatusBadRequest
}
