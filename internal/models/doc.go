// Package models defines the wire models shared across the expense
// composition engine.
//
// These types mirror the JSON the BetterSplit REST API serves and
// accepts: groups with their members, the authenticated user, and the
// expense-create payload. In-progress drafts live in the expense
// package and allocation state in the allocation package; this package
// is the boundary vocabulary only.
//
// All identifiers are opaque strings assigned by the server. The engine
// never parses or generates them, it only keys on them.
package models
