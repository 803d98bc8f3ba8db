// File: ctx/websocketctx.go
// Package ctx
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// WebsocketContext binds one inbound websocket handshake to the current
// task. Matching additionally checks websocket capability: a route that
// exists but cannot serve websockets is recorded as a deferred BadRequest,
// with the matched route kept for inspection.

package ctx

import (
	"context"

	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/protocol"
)

// WebsocketContext is the context relating to one websocket.
type WebsocketContext struct {
	baseRequestWebsocketContext

	websocket *protocol.Websocket
}

// NewWebsocketContext binds an adapter for websocket and matches it
// immediately, deferring all routing failures onto the websocket value.
func NewWebsocketContext(app api.App, websocket *protocol.Websocket) (*WebsocketContext, error) {
	base, err := newBaseContext(app, websocket)
	if err != nil {
		return nil, err
	}
	c := &WebsocketContext{
		baseRequestWebsocketContext: base,
		websocket:                   websocket,
	}
	if err := c.matchWebsocketRoute(); err != nil {
		return nil, err
	}
	return c, nil
}

// matchWebsocketRoute is matchRoute plus the capability check. Both are
// folded into one bind because the routing outcome is settable only once.
func (c *WebsocketContext) matchWebsocketRoute() error {
	route, args, err := c.adapter.Match()
	if err != nil {
		if rerr, ok := api.AsRoutingError(err); ok {
			return c.websocket.BindRouting(nil, nil, rerr)
		}
		return err
	}
	if !route.Websocket {
		return c.websocket.BindRouting(route, args, api.NewBadRequest())
	}
	return c.websocket.BindRouting(route, args, nil)
}

// Websocket returns the bound websocket value.
func (c *WebsocketContext) Websocket() *protocol.Websocket { return c.websocket }

// Enter activates the context for the calling task.
func (c *WebsocketContext) Enter(octx context.Context) error {
	if err := c.enter(octx, c.websocket); err != nil {
		return err
	}
	websocketCtxStack.Push(c)
	return nil
}

// Exit deactivates the context. Websockets have no request-teardown step;
// the stack pop and the implicit app context pop still run on every path.
func (c *WebsocketContext) Exit(octx context.Context, cause error) error {
	if _, err := websocketCtxStack.Pop(); err != nil {
		return err
	}
	return c.exitApp(octx, cause)
}

// Do runs fn inside this context with release guaranteed on every exit
// path.
func (c *WebsocketContext) Do(octx context.Context, fn func(context.Context) error) error {
	if err := c.Enter(octx); err != nil {
		return err
	}
	return runScoped(octx, fn, func(cause error) error {
		return c.Exit(octx, cause)
	})
}
