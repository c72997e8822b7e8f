package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/common"
)

// Error classes. Every error returned by HTTPClient matches exactly one of them
// with errors.Is, except context cancellation which is returned as is.
var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrRejected     = errors.New("request rejected")
	ErrServer       = errors.New("server error")
)

// Messages shown instead of the backend's wording.
const (
	MsgDuplicateEmail     = "An account with this email already exists. Please log in instead."
	MsgInvalidCredentials = "Wrong password or email. Please try again."
	MsgUnavailable        = "Unable to reach the server. Please check your connection and try again."
	MsgTimeout            = "The request timed out. Please try again."
	MsgGeneric            = "Something went wrong. Please try again."
)

// APIError carries the HTTP status and the display message of a failed call.
// Status is 0 for transport failures.
type APIError struct {
	Status  int
	Message string
	Kind    error
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable, status == http.StatusGatewayTimeout:
		return ErrUnavailable
	case status >= 400 && status < 500:
		return ErrRejected
	default:
		return ErrServer
	}
}

// newStatusError builds the APIError for a >= 400 response on route.
func newStatusError(route string, status int, backendMsg string) *APIError {
	return &APIError{
		Status:  status,
		Message: remapMessage(route, status, backendMsg),
		Kind:    kindForStatus(status),
	}
}

func newTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	msg := MsgUnavailable
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		msg = MsgTimeout
	}
	return &APIError{Message: msg, Kind: ErrUnavailable, Err: err}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// remapMessage rewrites the duplicate-registration and bad-credential
// messages into end-user wording and fills in empty messages. The
// duplicate-account wording only applies to registration.
func remapMessage(route string, status int, msg string) string {
	lower := strings.ToLower(strings.TrimSpace(msg))

	switch {
	case route == routeRegister && isDuplicateAccount(lower):
		return MsgDuplicateEmail
	case strings.Contains(lower, "invalid credentials"),
		strings.Contains(lower, "invalid email or password"),
		strings.Contains(lower, "wrong password"),
		strings.Contains(lower, "incorrect password"):
		return MsgInvalidCredentials
	}

	if route == routeLogin && status == http.StatusUnauthorized {
		return MsgInvalidCredentials
	}
	if lower == "" {
		if text := http.StatusText(status); text != "" && status < 500 {
			return text
		}
		return MsgGeneric
	}
	return strings.TrimSpace(msg)
}

func isDuplicateAccount(lower string) bool {
	return strings.Contains(lower, "already exists") ||
		strings.Contains(lower, "already registered") ||
		strings.Contains(lower, "duplicate") ||
		strings.Contains(lower, "email") && (strings.Contains(lower, "taken") || strings.Contains(lower, "in use"))
}

// ErrorMessage turns any error produced by the client stack into the single
// string stored in a feature's Error field.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	var ve *common.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	case errors.Is(err, context.Canceled):
		return "The request was cancelled."
	case errors.Is(err, ErrUnavailable):
		return MsgUnavailable
	}
	return err.Error()
}
