package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an application error independently of its HTTP mapping.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInvalidTransition Kind = "invalid_transition"
	KindValidation        Kind = "validation"
	KindInternal          Kind = "internal"
)

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(kind Kind, code int, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound reports that an entity id or name does not exist.
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, http.StatusNotFound, fmt.Sprintf(format, args...), nil)
}

// Conflict reports a uniqueness violation on create.
func Conflict(format string, args ...any) *Error {
	return New(KindConflict, http.StatusBadRequest, fmt.Sprintf(format, args...), nil)
}

// Validation reports malformed or out-of-range input.
func Validation(format string, args ...any) *Error {
	return New(KindValidation, http.StatusBadRequest, fmt.Sprintf(format, args...), nil)
}

// InvalidTransition reports a status change that is not allowed from the
// current state. The message names the attempted pair so callers see exactly
// which transition was rejected.
func InvalidTransition(from, to string) *Error {
	return New(
		KindInvalidTransition,
		http.StatusBadRequest,
		fmt.Sprintf("invalid status transition from %q to %q", from, to),
		nil,
	)
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return New(KindInternal, http.StatusInternalServerError, message, err)
}

func is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func IsNotFound(err error) bool          { return is(err, KindNotFound) }
func IsConflict(err error) bool          { return is(err, KindConflict) }
func IsInvalidTransition(err error) bool { return is(err, KindInvalidTransition) }
func IsValidation(err error) bool        { return is(err, KindValidation) }

// ErrorMiddleware translates errors attached to the Gin context into JSON
// responses. Unclassified errors surface as 500s without leaking details.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *Error
		if !errors.As(err, &appErr) {
			appErr = Internal("Internal server error", err)
		}

		c.JSON(appErr.Code, appErr)
		c.Abort()
	}
}
