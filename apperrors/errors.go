package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an application error carrying the HTTP status it maps to.
type Error struct {
	Code    int    `json:"-"`
	Kind    string `json:"error"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind, so wrapped copies of the sentinels
// below still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New creates a new Error.
func New(code int, kind, message string) *Error {
	return &Error{Code: code, Kind: kind, Message: message}
}

// Wrap returns a copy of e carrying err as its cause. The sentinel itself
// is never mutated.
func (e *Error) Wrap(err error) *Error {
	return &Error{Code: e.Code, Kind: e.Kind, Message: e.Message, Err: err}
}

// WithMessage returns a copy of e with a resource-specific message.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Code: e.Code, Kind: e.Kind, Message: message, Err: e.Err}
}

var (
	ErrValidation         = New(http.StatusBadRequest, "validation_failed", "Validation failed")
	ErrDuplicateEmail     = New(http.StatusBadRequest, "duplicate_email", "Email already exists")
	ErrDuplicateReview    = New(http.StatusBadRequest, "duplicate_review", "You have already reviewed this product")
	ErrInvalidCredentials = New(http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
	ErrUnauthenticated    = New(http.StatusUnauthorized, "unauthenticated", "Access denied. No token provided.")
	ErrTokenExpired       = New(http.StatusUnauthorized, "token_expired", "Token expired")
	ErrTokenInvalid       = New(http.StatusUnauthorized, "token_invalid", "Invalid token")
	ErrVerification       = New(http.StatusInternalServerError, "verification_failed", "Token verification failed")
	ErrForbidden          = New(http.StatusForbidden, "forbidden", "Access denied. Insufficient permissions.")
	ErrNotFound           = New(http.StatusNotFound, "not_found", "Not found")
	ErrServerFault        = New(http.StatusInternalServerError, "server_error", "Internal server error")
)

// Respond writes err as a JSON response and the matching HTTP status.
// Unrecognized errors surface as a 500 without leaking their cause.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = ErrServerFault
	}
	c.JSON(appErr.Code, gin.H{"message": appErr.Message, "error": appErr.Kind})
}

// Abort is Respond plus request abortion, for use in middleware.
func Abort(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}
