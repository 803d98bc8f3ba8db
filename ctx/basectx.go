// File: ctx/basectx.go
// Package ctx
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared core of RequestContext and WebsocketContext: route matching at
// construction with deferred failures, the implicit app context on enter,
// session opening with the null-session fallback, and the symmetric app
// context pop on exit.

package ctx

import (
	"context"
	"errors"

	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/protocol"
)

// baseRequestWebsocketContext carries the state common to both context
// kinds. The embedding type owns its own task-local stack.
type baseRequestWebsocketContext struct {
	app     api.App
	adapter api.RouteAdapter
	session api.Session
}

func newBaseContext(app api.App, target api.Routable) (baseRequestWebsocketContext, error) {
	adapter, err := app.CreateAdapter(target)
	if err != nil {
		return baseRequestWebsocketContext{}, err
	}
	return baseRequestWebsocketContext{app: app, adapter: adapter}, nil
}

// matchRoute resolves the adapter against the route table and binds the
// outcome onto target. Routing failures are recorded, never returned;
// only adapter misuse or a double bind surfaces as an error.
func (b *baseRequestWebsocketContext) matchRoute(target *protocol.BaseRequestWebsocket) error {
	route, args, err := b.adapter.Match()
	if err != nil {
		if rerr, ok := api.AsRoutingError(err); ok {
			return target.BindRouting(nil, nil, rerr)
		}
		return err
	}
	return target.BindRouting(route, args, nil)
}

// enter performs the shared half of scope entry: the implicit app context
// push (reusing the active one when present) and the session open. The
// caller pushes itself onto its own stack afterwards.
func (b *baseRequestWebsocketContext) enter(octx context.Context, target api.Routable) error {
	appCtx, active := appCtxStack.Top()
	if !active {
		fresh, err := NewAppContext(b.app)
		if err != nil {
			return err
		}
		appCtx = fresh
	}
	if err := appCtx.Push(octx); err != nil {
		return err
	}

	session, err := b.app.OpenSession(octx, target)
	if err != nil {
		// Session IO failed before the scope was usable: unwind the app
		// context we just pushed so enter remains all-or-nothing.
		if popErr := appCtx.Pop(octx, err); popErr != nil {
			return errors.Join(err, popErr)
		}
		return err
	}
	if session == nil {
		session = b.app.MakeNullSession()
	}
	b.session = session
	return nil
}

// exitApp pops the active app context with the scope's failure, exactly
// mirroring the push performed on enter.
func (b *baseRequestWebsocketContext) exitApp(octx context.Context, cause error) error {
	appCtx, active := appCtxStack.Top()
	if !active {
		return api.ErrEmptyStack
	}
	return appCtx.Pop(octx, cause)
}

// App returns the owning application handle.
func (b *baseRequestWebsocketContext) App() api.App { return b.app }

// Session returns the session opened on enter, never nil once entered.
func (b *baseRequestWebsocketContext) Session() api.Session { return b.session }

// URLAdapter returns the adapter bound to this request or websocket.
func (b *baseRequestWebsocketContext) URLAdapter() api.RouteAdapter { return b.adapter }
