package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

type ErrorKind string

const (
	KindAuth       ErrorKind = "auth"
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindNetwork    ErrorKind = "network"
	KindServer     ErrorKind = "server"
)

// ErrMutationPending is returned when an identical mutation is still in flight.
var ErrMutationPending = errors.New("an identical request is already in progress")

// Error describes a failed backend call.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Method     string
	Path       string
	Err        error

	body []byte
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	if e.Method == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transient reports whether retrying the same request may succeed.
func (e *Error) Transient() bool {
	return e.Kind == KindNetwork || e.Kind == KindServer
}

func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func IsAuth(err error) bool       { return KindOf(err) == KindAuth }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNetwork(err error) bool    { return KindOf(err) == KindNetwork }

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

func newStatusError(method, path string, status int, body []byte) *Error {
	return &Error{
		Kind:       kindForStatus(status),
		StatusCode: status,
		Message:    errorMessage(status, body),
		Method:     method,
		Path:       path,
		body:       body,
	}
}

func errorMessage(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		for _, field := range []string{"error", "message"} {
			if value := gjson.GetBytes(body, field); value.Type == gjson.String && value.String() != "" {
				return value.String()
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "{") {
		return text
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", status)
}

func newTransportError(method, path string, err error) *Error {
	message := err.Error()
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		message = "request timed out"
	}
	return &Error{
		Kind:    KindNetwork,
		Message: message,
		Method:  method,
		Path:    path,
		Err:     err,
	}
}

func isTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
