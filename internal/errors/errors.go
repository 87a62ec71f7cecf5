package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every failure that can cross the dispatcher boundary maps to
// exactly one of these, and each kind has a fixed JSON-RPC code (see rpc.go).
const (
	KindNotFound      = "not_found"
	KindAPI           = "api"
	KindNetwork       = "network"
	KindConfig        = "config"
	KindValidation    = "validation"
	KindSerialization = "serialization"
	KindIO            = "io"
	KindInternal      = "internal"
)

// AppError carries the error kind, a message, the wrapped cause, and the
// HTTP status used when the error surfaces on a REST-style response.
type AppError struct {
	Kind    string `json:"type"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
	Code    int    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an application error.
func New(kind, message string, cause error, code int) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		Code:    code,
	}
}

// Is checks whether the error (anywhere in its chain) is of the given kind.
func Is(err error, kind string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// KindOf returns the kind of the error, or KindInternal for foreign errors.
func KindOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// GetCode returns the HTTP status carried by the error.
func GetCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// NotFound signals that the requested resource or tool does not exist.
func NotFound(resource string) *AppError {
	return New(KindNotFound, fmt.Sprintf("resource not found: %s", resource), nil, http.StatusNotFound)
}

// API signals a non-2xx upstream response other than 404.
func API(status int) *AppError {
	return New(KindAPI, fmt.Sprintf("api error: status %d", status), nil, http.StatusBadGateway)
}

// Network signals a connect or timeout failure reaching the upstream.
func Network(cause error) *AppError {
	return New(KindNetwork, "network error", cause, http.StatusBadGateway)
}

// Config signals invalid or missing configuration.
func Config(message string, cause error) *AppError {
	return New(KindConfig, message, cause, http.StatusInternalServerError)
}

// Validation signals an invalid request argument.
func Validation(message string) *AppError {
	return New(KindValidation, message, nil, http.StatusBadRequest)
}

// Serialization signals a JSON encode/decode failure.
func Serialization(cause error) *AppError {
	return New(KindSerialization, "serialization error", cause, http.StatusInternalServerError)
}

// IO signals a filesystem or stream failure.
func IO(cause error) *AppError {
	return New(KindIO, "io error", cause, http.StatusInternalServerError)
}

// Internal signals an unexpected server-side failure.
func Internal(message string, cause error) *AppError {
	return New(KindInternal, message, cause, http.StatusInternalServerError)
}
