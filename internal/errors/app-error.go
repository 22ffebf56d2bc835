package app_error

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e AppError) Error() string {
	return e.Message
}

func (e AppError) JSON(w http.ResponseWriter) error {
	return json.NewEncoder(w).Encode(e)
}

func NewAppError(code int, msg, field string) *AppError {
	return &AppError{
		Code:    code,
		Message: msg,
		Field:   field,
	}
}

// Messaging-core taxonomy. Every failure the handshake or the dispatcher can
// produce maps to one of these four classes.

func Unauthenticated(msg string) *AppError {
	return NewAppError(http.StatusUnauthorized, msg, "auth")
}

func NotFound(msg string) *AppError {
	return NewAppError(http.StatusNotFound, msg, "not-found")
}

func Forbidden(msg string) *AppError {
	return NewAppError(http.StatusForbidden, msg, "forbidden")
}

func StorageFailure(msg string) *AppError {
	return NewAppError(http.StatusInternalServerError, msg, "storage")
}
