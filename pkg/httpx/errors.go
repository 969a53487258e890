package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is an HTTP-facing error. Handlers return one and WriteError renders it.
type Error struct {
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Name(), e.Message, e.Cause)
	}
	return e.Name() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Name is the error class, derived from the status.
func (e *Error) Name() string {
	switch e.Status {
	case http.StatusBadRequest:
		return "BadRequest"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "NotFound"
	case http.StatusConflict:
		return "Conflict"
	default:
		return "InternalServerError"
	}
}

func NewError(status int, message string, cause error) *Error {
	return &Error{Status: status, Message: message, Cause: cause}
}

func BadRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string, cause error) *Error {
	return NewError(http.StatusForbidden, message, cause)
}

func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message, nil)
}

func Conflict(message string, cause error) *Error {
	return NewError(http.StatusConflict, message, cause)
}

func Internal(cause error) *Error {
	return NewError(http.StatusInternalServerError, "Internal Server Error", cause)
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Name    string `json:"name"`
	Stack   string `json:"stack,omitempty"`
}

// WriteError renders err. Anything that is not an *Error becomes a 500.
// The cause chain is only included when ExposeStack is in the chain.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var he *Error
	if !errors.As(err, &he) {
		he = Internal(err)
	}

	body := ErrorBody{
		Message: he.Message,
		Status:  he.Status,
		Name:    he.Name(),
	}
	if stackEnabled(r.Context()) {
		body.Stack = causeChain(err)
	}

	WriteJSON(w, he.Status, body)
}

func causeChain(err error) string {
	var lines []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}

// ExposeStack makes WriteError include the cause chain in error bodies.
// Only wire it in development.
func ExposeStack() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(withStack(r.Context())))
		})
	}
}
