// File: ctx/globals.go
// Package ctx
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// AppGlobals is the default implementation of api.Globals: a mutex-guarded
// string-keyed bag scoped to one application context. Task isolation comes
// from the owning AppContext's placement on the task-local stack; the lock
// only covers callers that deliberately share one AppContext across tasks.

package ctx

import (
	"sync"

	"github.com/momentics/flowctx/api"
)

// AppGlobals is a dynamically keyed attribute store.
type AppGlobals struct {
	mu   sync.RWMutex
	data map[string]any
}

var _ api.Globals = (*AppGlobals)(nil)

// NewAppGlobals creates an empty store.
func NewAppGlobals() *AppGlobals {
	return &AppGlobals{data: make(map[string]any)}
}

// Get returns the value for key, or def when absent.
func (g *AppGlobals) Get(key string, def any) any {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if v, ok := g.data[key]; ok {
		return v
	}
	return def
}

// Set stores a value under key.
func (g *AppGlobals) Set(key string, value any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data[key] = value
}

// Pop removes and returns the value for key. It fails with
// api.ErrKeyNotFound when the key is absent.
func (g *AppGlobals) Pop(key string) (any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.data[key]
	if !ok {
		return nil, api.ErrKeyNotFound
	}
	delete(g.data, key)
	return v, nil
}

// PopDefault removes and returns the value for key, or def when absent.
func (g *AppGlobals) PopDefault(key string, def any) any {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.data[key]
	if !ok {
		return def
	}
	delete(g.data, key)
	return v
}

// SetDefault stores def under key if absent and returns the value now
// present.
func (g *AppGlobals) SetDefault(key string, def any) any {
	g.mu.Lock()
	defer g.mu.Unlock()
	if v, ok := g.data[key]; ok {
		return v
	}
	g.data[key] = def
	return def
}

// Has reports whether key is present.
func (g *AppGlobals) Has(key string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.data[key]
	return ok
}

// Keys returns the keys currently present.
func (g *AppGlobals) Keys() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	keys := make([]string, 0, len(g.data))
	for k := range g.data {
		keys = append(keys, k)
	}
	return keys
}
