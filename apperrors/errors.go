package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so handlers can pick the right
// HTTP status and the UI can pick the right recovery affordance.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindInvalidQuantity   Kind = "invalid_quantity"
	KindOutOfStock        Kind = "out_of_stock"
	KindExceedsStock      Kind = "exceeds_stock"
	KindInvalidTransition Kind = "invalid_transition"
	KindTransitionPending Kind = "transition_pending"
	KindNotFound          Kind = "not_found"
	KindUnauthorized      Kind = "unauthorized"
	KindNetwork           Kind = "network"
	KindServer            Kind = "server"
	KindInternal          Kind = "internal"
)

// Error is the application error type. Message is safe to surface to the
// user; Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two Errors by Kind, so sentinel-style checks with errors.Is
// work across wrapped instances.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// HTTPStatus maps the error kind to a response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindInvalidQuantity, KindOutOfStock, KindExceedsStock:
		return http.StatusBadRequest
	case KindInvalidTransition, KindTransitionPending:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNetwork:
		return http.StatusServiceUnavailable
	case KindServer:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the caller may usefully retry the same
// operation without changing anything first.
func (e *Error) Retryable() bool {
	return e.Kind == KindNetwork
}

// New creates an Error with the given kind and user-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that records err as its cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
