// File: internal/session/session.go
// Package session
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Session values handed to the context layer. Session is the mutable
// per-request state tracked by the memory store; NullSession is the
// placeholder substituted when a store declines to open a session, so
// session-dependent code never needs a nil check. Null sessions silently
// discard writes.

package session

import (
	"sync"

	"github.com/momentics/flowctx/api"
)

// Session is the default mutable session implementation.
type Session struct {
	mu       sync.RWMutex
	id       string
	data     map[string]any
	modified bool
	fresh    bool
}

var _ api.Session = (*Session)(nil)

func newSession(id string, fresh bool, data map[string]any) *Session {
	if data == nil {
		data = make(map[string]any)
	}
	return &Session{id: id, fresh: fresh, data: data}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Fresh reports whether the session was created for this request rather
// than loaded from the store.
func (s *Session) Fresh() bool { return s.fresh }

// Get returns the value for key and whether it was present.
func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores a value and marks the session modified.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.modified = true
}

// Delete removes a key and marks the session modified.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.modified = true
	}
}

// Keys returns the keys currently present.
func (s *Session) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

// Modified reports whether the session was written to since opening.
func (s *Session) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// NullSession discards all writes and holds no state.
type NullSession struct{}

var _ api.Session = NullSession{}

// ID returns the empty identifier.
func (NullSession) ID() string { return "" }

// Get always reports absence.
func (NullSession) Get(string) (any, bool) { return nil, false }

// Set discards the write.
func (NullSession) Set(string, any) {}

// Delete discards the delete.
func (NullSession) Delete(string) {}

// Keys returns nothing.
func (NullSession) Keys() []string { return nil }

// Modified is always false.
func (NullSession) Modified() bool { return false }
