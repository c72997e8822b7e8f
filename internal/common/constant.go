// Package common contains shared constants and sentinel errors used across
// tailorhub components.
package common

// Header names used on outbound API requests.
const (
	AuthorizationHeaderName  = "Authorization"
	BearerPrefix             = "Bearer "
	RequestIDHeaderName      = "X-Request-ID"
	IdempotencyKeyHeaderName = "Idempotency-Key"
)
