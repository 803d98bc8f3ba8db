// File: api/session.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Session contracts. A store may decline to open a session by returning
// nil; the context layer then substitutes the store's null session, a
// write-discarding placeholder, so session-dependent code never needs a
// nil check.

package api

import "context"

// Session is the per-request session state.
type Session interface {
	// ID returns the session identifier, empty for null sessions.
	ID() string
	// Get returns the value for key and whether it was present.
	Get(key string) (any, bool)
	// Set stores a value. Null sessions silently discard writes.
	Set(key string, value any)
	// Delete removes a key. Null sessions silently discard deletes.
	Delete(key string)
	// Keys returns the keys currently present.
	Keys() []string
	// Modified reports whether the session was written to since opening.
	Modified() bool
}

// SessionStore opens sessions for incoming requests and websockets.
type SessionStore interface {
	// OpenSession loads or creates the session for target. A nil Session
	// with a nil error means the store declined; callers substitute
	// MakeNullSession. Opening may perform IO and honors ctx.
	OpenSession(ctx context.Context, target Routable) (Session, error)

	// MakeNullSession returns the write-discarding placeholder session.
	MakeNullSession() Session
}
