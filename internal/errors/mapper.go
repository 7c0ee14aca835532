// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Sentinel errors for domain rules. Handlers pass everything through Map,
// so these carry their own HTTP status.
var (
	ErrSelfSwipe      = New(http.StatusBadRequest, "cannot swipe on yourself")
	ErrSelfMessage    = New(http.StatusBadRequest, "cannot message yourself")
	ErrEmailTaken     = New(http.StatusConflict, "email already registered")
	ErrBadCredentials = New(http.StatusUnauthorized, "invalid email or password")
)

// Error is a store/domain failure with an HTTP status attached.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// New creates an Error with the given status and message.
func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// Map converts repo/infra errors into an HTTP status plus a safe message.
// Keeps handlers clean by centralizing error mapping.
func Map(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}

	var domainErr *Error
	switch {
	case errors.As(err, &domainErr):
		return domainErr.Status, domainErr.Message

	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "record not found"

	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, "already exists"

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"

	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "request was canceled"

	default:
		// unknown failure: keep driver/SQL detail out of the body
		return http.StatusInternalServerError, "internal server error"
	}
}
