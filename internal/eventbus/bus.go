// File: internal/eventbus/bus.go
// Package eventbus
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Default api.EventBus: a named-topic subscriber registry with synchronous,
// awaited fan-out. Delivery happens on the sender's task in subscription
// order; subscriber errors are collected and joined, never dropped.

package eventbus

import (
	"context"
	"errors"
	"sync"

	"github.com/momentics/flowctx/api"
)

type subscription struct {
	id int
	fn api.SubscriberFunc
}

// Bus is an in-process event bus.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string][]subscription
}

var _ api.EventBus = (*Bus)(nil)

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers fn for name. The returned func removes the
// subscription; calling it more than once is harmless.
func (b *Bus) Subscribe(name string, fn api.SubscriberFunc) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[name]
		for i, s := range list {
			if s.id == id {
				b.subs[name] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
}

// Send delivers payload to every subscriber of name and returns once all
// ran. The subscriber list is snapshotted, so subscribing or unsubscribing
// from inside a handler does not affect the in-flight delivery.
func (b *Bus) Send(ctx context.Context, name string, payload any) error {
	b.mu.RLock()
	list := make([]subscription, len(b.subs[name]))
	copy(list, b.subs[name])
	b.mu.RUnlock()

	var errs []error
	for _, s := range list {
		if err := s.fn(ctx, name, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
