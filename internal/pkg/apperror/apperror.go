// Package apperror is the error taxonomy shared by services and controllers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation          Kind = "validation"
	KindProviderUnavailable Kind = "provider_unavailable"
	KindProviderError       Kind = "provider_error"
	KindSearchUpstream      Kind = "search_upstream"
	KindSearchExhausted     Kind = "search_exhausted"
	KindFileIO              Kind = "file_io"
)

// AppError carries a Kind, a user-facing message and the underlying cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError of the same Kind, so callers can write
// errors.Is(err, apperror.ErrProviderUnavailable).
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation          = &AppError{Kind: KindValidation}
	ErrProviderUnavailable = &AppError{Kind: KindProviderUnavailable, Message: "AI service is not available. Please check the model configuration."}
	ErrProvider            = &AppError{Kind: KindProviderError}
	ErrSearchUpstream      = &AppError{Kind: KindSearchUpstream}
	ErrSearchExhausted     = &AppError{Kind: KindSearchExhausted}
	ErrFileIO              = &AppError{Kind: KindFileIO}
)

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func ProviderUnavailable() *AppError {
	return &AppError{Kind: KindProviderUnavailable, Message: ErrProviderUnavailable.Message}
}

// Provider wraps a failed generation call. Detail is the cause text.
func Provider(err error) *AppError {
	return &AppError{Kind: KindProviderError, Err: err}
}

func SearchUpstream(source string, err error) *AppError {
	return &AppError{Kind: KindSearchUpstream, Message: fmt.Sprintf("%s: %v", source, err), Err: err}
}

func SearchExhausted(query string) *AppError {
	return &AppError{Kind: KindSearchExhausted, Message: fmt.Sprintf("no results for %q from any endpoint", query)}
}

func FileIO(err error) *AppError {
	return &AppError{Kind: KindFileIO, Err: err}
}

// KindOf returns the Kind of the first AppError in the chain, or "".
func KindOf(err error) Kind {
	var e *AppError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusOf maps an error to the HTTP status used in its envelope.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindProviderUnavailable:
		return http.StatusServiceUnavailable
	case KindProviderError, KindSearchUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
