// File: api/globals.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Globals is the dynamically keyed scratch space scoped to one application
// context. One instance is created per AppContext by the application's
// globals factory and lives exactly as long as its owner.
type Globals interface {
	// Get returns the value for key, or def when absent.
	Get(key string, def any) any
	// Set stores a value under key.
	Set(key string, value any)
	// Pop removes and returns the value for key, failing with
	// ErrKeyNotFound when absent.
	Pop(key string) (any, error)
	// PopDefault removes and returns the value for key, or def when absent.
	PopDefault(key string, def any) any
	// SetDefault stores def under key if absent and returns the value now
	// present.
	SetDefault(key string, def any) any
	// Has reports whether key is present.
	Has(key string) bool
	// Keys returns the keys currently present.
	Keys() []string
}
