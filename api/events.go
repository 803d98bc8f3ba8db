// File: api/events.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Event bus contract and the lifecycle events the context layer emits.
// Delivery is awaited: Send returns only after every subscriber ran, and
// the context layer tolerates but does not interpret subscriber errors
// beyond propagating them.

package api

import "context"

// Lifecycle event names emitted by the context layer.
const (
	// EventAppContextPushed fires on every push of an application context,
	// including nested re-pushes of an already active one.
	EventAppContextPushed = "appcontext.pushed"
	// EventAppContextPopped fires after an application context left its
	// task-local stack and teardown, if due, completed without error.
	EventAppContextPopped = "appcontext.popped"
)

// AppContextEvent is the payload of the app context lifecycle events.
type AppContextEvent struct {
	App App
}

// SubscriberFunc handles one delivered event.
type SubscriberFunc func(ctx context.Context, name string, payload any) error

// EventBus is a named-topic notification mechanism.
type EventBus interface {
	// Send delivers payload to every subscriber of name, in subscription
	// order, and returns once all ran. Subscriber errors are joined.
	Send(ctx context.Context, name string, payload any) error

	// Subscribe registers fn for name and returns an unsubscribe func.
	Subscribe(name string, fn SubscriberFunc) (unsubscribe func())
}
