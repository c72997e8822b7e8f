// Package devserver is an in-memory marketplace backend for local runs and
// tests. It serves the REST routes the terminal client calls, signs HS256
// bearer tokens and keeps all data in process memory. Nothing is persisted.
package devserver
