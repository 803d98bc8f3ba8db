// File: ctx/appctx.go
// Package ctx
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// AppContext is the reference-counted application scope. A request or
// websocket context entering with no app context active constructs and
// pushes one implicitly; entering while one is active re-pushes that same
// instance, so only the outermost pop runs application teardown. Push and
// pop may suspend: they await event delivery and teardown hooks.

package ctx

import (
	"context"
	"errors"

	"github.com/momentics/flowctx/api"
)

// AppContext binds an application handle, a server-bound route adapter and
// a fresh Globals instance to the current task for the duration of a scope.
type AppContext struct {
	app        api.App
	urlAdapter api.RouteAdapter
	g          api.Globals

	// refCount is incremented once per push and decremented once per pop.
	// Teardown runs iff a pop transitions it to <= 0. One task owns the
	// counter at a time; callers that intentionally share an AppContext
	// across tasks forfeit per-task isolation, not counter correctness
	// within their own LIFO discipline.
	refCount int
}

// NewAppContext builds a context for app with a server-bound adapter,
// useful for URL building outside any request, and a fresh globals bag.
func NewAppContext(app api.App) (*AppContext, error) {
	adapter, err := app.CreateAdapter(nil)
	if err != nil {
		return nil, err
	}
	return &AppContext{
		app:        app,
		urlAdapter: adapter,
		g:          app.NewGlobals(),
	}, nil
}

// App returns the application handle.
func (c *AppContext) App() api.App { return c.app }

// Globals returns the per-context scratch space.
func (c *AppContext) Globals() api.Globals { return c.g }

// URLAdapter returns the server-bound route adapter.
func (c *AppContext) URLAdapter() api.RouteAdapter { return c.urlAdapter }

// Push makes this context the active one for the calling task and announces
// it on the application's event bus. Every push emits the pushed event,
// including nested re-pushes of an already active context.
func (c *AppContext) Push(octx context.Context) error {
	c.refCount++
	appCtxStack.Push(c)
	return c.app.Events().Send(octx, api.EventAppContextPushed, api.AppContextEvent{App: c.app})
}

// Pop decrements the reference count, runs application teardown if the
// count reached zero, and removes the context from the task's stack. The
// stack entry is removed even when a teardown hook fails; the hook's error
// then propagates after removal and the popped event is not sent.
func (c *AppContext) Pop(octx context.Context, cause error) error {
	c.refCount--
	var teardownErr error
	if c.refCount <= 0 {
		teardownErr = c.app.RunAppContextTeardown(octx, cause)
	}
	if _, err := appCtxStack.Pop(); err != nil {
		if teardownErr != nil {
			return errors.Join(teardownErr, err)
		}
		return err
	}
	if teardownErr != nil {
		return teardownErr
	}
	return c.app.Events().Send(octx, api.EventAppContextPopped, api.AppContextEvent{App: c.app})
}

// Do runs fn inside this context: push, body, pop with the body's failure.
// Release is guaranteed on every exit path, including panics.
func (c *AppContext) Do(octx context.Context, fn func(context.Context) error) error {
	if err := c.Push(octx); err != nil {
		return err
	}
	return runScoped(octx, fn, func(cause error) error {
		return c.Pop(octx, cause)
	})
}
