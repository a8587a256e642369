// Package postgres provides a single-connection PostgreSQL helper driven by a
// named INI section.
//
// A Manager moves through a fixed lifecycle:
//
//	Unconnected --Connect--> Connected --Cursor--> CursorOpen --Close--> Closed
//
// Closed is terminal; build a new Manager to reconnect. A Manager is meant to
// be owned by a single goroutine and performs no internal locking. Pooling,
// retries and transaction management are left to callers.
package postgres
