// File: internal/session/store.go
// Package session
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// In-memory session store with TTL expiry. Sessions are keyed by a cookie
// carrying an opaque uuid. A background janitor sweeps expired records on a
// pooled worker goroutine. Opening never fails here, but the api contract
// allows IO-backed stores to.

package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/google/uuid"

	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/protocol"
)

// CookieName is the cookie the memory store keys sessions by.
const CookieName = "flowctx_session"

type record struct {
	sess    *Session
	expires time.Time
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*record
	ttl      time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

var _ api.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates a store whose sessions expire ttl after their last
// save, and starts the expiry janitor.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	m := &MemoryStore{
		sessions: make(map[string]*record),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	gopool.Go(m.janitor)
	return m
}

// OpenSession loads the session named by the request cookie, or creates a
// fresh one when the cookie is absent, unknown or expired.
func (m *MemoryStore) OpenSession(_ context.Context, target api.Routable) (api.Session, error) {
	if id := cookieValue(target, CookieName); id != "" {
		m.mu.RLock()
		rec, ok := m.sessions[id]
		m.mu.RUnlock()
		if ok && time.Now().Before(rec.expires) {
			data := make(map[string]any)
			rec.sess.mu.RLock()
			for k, v := range rec.sess.data {
				data[k] = v
			}
			rec.sess.mu.RUnlock()
			return newSession(id, false, data), nil
		}
	}
	return newSession(uuid.NewString(), true, nil), nil
}

// MakeNullSession returns the write-discarding placeholder.
func (m *MemoryStore) MakeNullSession() api.Session { return NullSession{} }

// SaveSession persists a modified session and sets the session cookie on
// the response. Null and unmodified sessions are left untouched.
func (m *MemoryStore) SaveSession(_ context.Context, s api.Session, resp *protocol.Response) error {
	sess, ok := s.(*Session)
	if !ok || !sess.Modified() {
		return nil
	}
	sess.mu.RLock()
	data := make(map[string]any, len(sess.data))
	for k, v := range sess.data {
		data[k] = v
	}
	sess.mu.RUnlock()

	m.mu.Lock()
	m.sessions[sess.id] = &record{
		sess:    newSession(sess.id, false, data),
		expires: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()

	cookie := &http.Cookie{Name: CookieName, Value: sess.id, Path: "/", HttpOnly: true}
	resp.Headers.Add("Set-Cookie", cookie.String())
	return nil
}

// Len returns the number of live records, expired ones included until the
// next sweep.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the janitor. Idempotent.
func (m *MemoryStore) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *MemoryStore) janitor() {
	interval := m.ttl
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for id, rec := range m.sessions {
				if now.After(rec.expires) {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}

// cookieValue extracts a cookie from the routable's Cookie header using the
// stdlib parser.
func cookieValue(target api.Routable, name string) string {
	if target == nil {
		return ""
	}
	raw := target.HeaderValue("Cookie")
	if raw == "" {
		return ""
	}
	header := http.Header{}
	header.Set("Cookie", raw)
	req := http.Request{Header: header}
	c, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
