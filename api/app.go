// File: api/app.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The application handle consumed by the context layer. The handle is
// long-lived and shared by many tasks; the context layer never mutates it,
// it only asks it for collaborators and invokes its teardown hooks.

package api

import "context"

// TeardownFunc is one cleanup hook. cause is the error that terminated the
// guarded scope, or nil on a clean exit.
type TeardownFunc func(ctx context.Context, cause error) error

// App is the application handle a context binds to.
type App interface {
	// Name identifies the application for diagnostics.
	Name() string

	// CreateAdapter returns a route adapter for target, or a server-bound
	// adapter when target is nil.
	CreateAdapter(target Routable) (RouteAdapter, error)

	// OpenSession asks the application's session store for target's
	// session. nil/nil means the store declined.
	OpenSession(ctx context.Context, target Routable) (Session, error)

	// MakeNullSession returns the write-discarding placeholder session.
	MakeNullSession() Session

	// RunRequestTeardown invokes the request teardown hooks with cause.
	RunRequestTeardown(ctx context.Context, cause error) error

	// RunAppContextTeardown invokes the app context teardown hooks with
	// cause. Called only when an app context's reference count reaches
	// zero.
	RunAppContextTeardown(ctx context.Context, cause error) error

	// NewGlobals builds a fresh Globals instance for a new app context.
	NewGlobals() Globals

	// Events returns the bus lifecycle notifications are delivered on.
	Events() EventBus
}
