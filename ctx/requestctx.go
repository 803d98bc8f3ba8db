// File: ctx/requestctx.go
// Package ctx
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RequestContext binds one inbound request to the current task. It is
// constructed once per request by the dispatch entry point, entered exactly
// once, exited exactly once, and never reused.

package ctx

import (
	"context"
	"errors"

	"github.com/eapache/queue"

	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/protocol"
)

// AfterRequestFunc mutates the outgoing response after the handler ran.
type AfterRequestFunc func(ctx context.Context, resp *protocol.Response) error

// RequestContext is the context relating to one request.
type RequestContext struct {
	baseRequestWebsocketContext

	request *protocol.Request

	// afterRequest holds the callbacks registered via AfterThisRequest, in
	// registration order. The dispatch layer drains and applies them
	// against the outgoing response before the context exits.
	afterRequest *queue.Queue
}

// NewRequestContext binds an adapter for request and matches it
// immediately. Routing failures are deferred onto the request value; the
// constructor fails only on adapter misuse.
func NewRequestContext(app api.App, request *protocol.Request) (*RequestContext, error) {
	base, err := newBaseContext(app, request)
	if err != nil {
		return nil, err
	}
	c := &RequestContext{
		baseRequestWebsocketContext: base,
		request:                     request,
		afterRequest:                queue.New(),
	}
	if err := c.matchRoute(&request.BaseRequestWebsocket); err != nil {
		return nil, err
	}
	return c, nil
}

// Request returns the bound request value.
func (c *RequestContext) Request() *protocol.Request { return c.request }

// Enter activates the context for the calling task: implicit app context
// push, session open (null fallback), then the request stack push.
func (c *RequestContext) Enter(octx context.Context) error {
	if err := c.enter(octx, c.request); err != nil {
		return err
	}
	requestCtxStack.Push(c)
	return nil
}

// Exit deactivates the context: request teardown hooks run first with the
// scope's failure, the stack entry is removed even when they fail, and the
// implicit app context is popped last with the same failure.
func (c *RequestContext) Exit(octx context.Context, cause error) error {
	teardownErr := c.app.RunRequestTeardown(octx, cause)
	if _, err := requestCtxStack.Pop(); err != nil {
		return errors.Join(teardownErr, err)
	}
	appErr := c.exitApp(octx, cause)
	if teardownErr != nil || appErr != nil {
		return errors.Join(teardownErr, appErr)
	}
	return nil
}

// Do runs fn inside this context with release guaranteed on every exit
// path. The body's error is re-raised after cleanup.
func (c *RequestContext) Do(octx context.Context, fn func(context.Context) error) error {
	if err := c.Enter(octx); err != nil {
		return err
	}
	return runScoped(octx, fn, func(cause error) error {
		return c.Exit(octx, cause)
	})
}

// appendAfterRequest registers one callback; see AfterThisRequest.
func (c *RequestContext) appendAfterRequest(fn AfterRequestFunc) {
	c.afterRequest.Add(fn)
}

// ConsumeAfterRequest drains the registered callbacks in registration
// order. Draining resets the queue, so a second call returns nothing.
func (c *RequestContext) ConsumeAfterRequest() []AfterRequestFunc {
	fns := make([]AfterRequestFunc, 0, c.afterRequest.Length())
	for c.afterRequest.Length() > 0 {
		fns = append(fns, c.afterRequest.Remove().(AfterRequestFunc))
	}
	return fns
}
