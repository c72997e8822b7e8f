// Package models defines the client-side data model of the tailorhub
// marketplace: accounts and roles, the session, the server-owned cart snapshot,
// catalog items with their filter sets, orders, reviews and inquiries.
package models
