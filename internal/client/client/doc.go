// Package client talks to the tailorhub marketplace backend.
//
// # Overview
//
// The package provides:
//  1. The backend contract as a set of narrow interfaces (AuthAPI, CartAPI,
//     CatalogAPI, InquiryAPI, OrderAPI, ProfileAPI, UploadAPI) combined in
//     Client, so services depend only on what they call.
//  2. HTTPClient, the REST/JSON implementation. It attaches the bearer token
//     from a TokenSource, stamps X-Request-ID on every call and an
//     Idempotency-Key on cart and order mutations, records Prometheus metrics
//     and OpenTelemetry spans, and normalises failures into *APIError.
//  3. Local store bootstrap (InitDatabase, RunMigrations) for the SQLite file
//     holding the persisted credential.
//
// # Error Handling
//
// Every failure matches one class with errors.Is: ErrUnavailable,
// ErrUnauthorized, ErrNotFound, ErrRejected or ErrServer. The display text is
// APIError.Message; duplicate-registration and bad-credential messages are
// rewritten for end users before they leave this package. ErrorMessage
// produces the display text for any error, including validation errors.
//
// Nothing here retries. A failed call is re-issued only when the user repeats
// the action.
package client
