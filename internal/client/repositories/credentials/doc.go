// Package credentials stores the session token in the local SQLite database.
//
// The credentials table holds at most one row (id = 1). Save replaces it,
// Clear removes it, and Load reports common.ErrorNotFound when it is absent.
// The schema is created by the goose migrations in internal/client/migrations.
package credentials
