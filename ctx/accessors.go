// File: ctx/accessors.go
// Package ctx
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stateless queries and mutators over the calling task's stacks. The Has
// predicates allow code to act only when a context is available; the
// Current accessors expose the active objects without parameter threading.

package ctx

import (
	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/protocol"
)

// HasAppContext reports whether an app context is active for this task.
func HasAppContext() bool {
	_, ok := appCtxStack.Top()
	return ok
}

// HasRequestContext reports whether a request context is active for this
// task.
func HasRequestContext() bool {
	_, ok := requestCtxStack.Top()
	return ok
}

// HasWebsocketContext reports whether a websocket context is active for
// this task.
func HasWebsocketContext() bool {
	_, ok := websocketCtxStack.Top()
	return ok
}

// CurrentApp returns the application of the active app context.
func CurrentApp() (api.App, bool) {
	c, ok := appCtxStack.Top()
	if !ok {
		return nil, false
	}
	return c.App(), true
}

// CurrentGlobals returns the scratch space of the active app context.
func CurrentGlobals() (api.Globals, bool) {
	c, ok := appCtxStack.Top()
	if !ok {
		return nil, false
	}
	return c.Globals(), true
}

// CurrentRequest returns the request of the active request context.
func CurrentRequest() (*protocol.Request, bool) {
	c, ok := requestCtxStack.Top()
	if !ok {
		return nil, false
	}
	return c.Request(), true
}

// CurrentWebsocket returns the websocket of the active websocket context.
func CurrentWebsocket() (*protocol.Websocket, bool) {
	c, ok := websocketCtxStack.Top()
	if !ok {
		return nil, false
	}
	return c.Websocket(), true
}

// AfterThisRequest schedules fn to run against the outgoing response of the
// currently active request, after its handler returns. Callbacks run in
// registration order. Calling this outside a request context fails with
// api.ErrNoActiveContext.
func AfterThisRequest(fn AfterRequestFunc) error {
	c, ok := requestCtxStack.Top()
	if !ok {
		return api.ErrNoActiveContext
	}
	c.appendAfterRequest(fn)
	return nil
}
