// File: ctx/websocketctx_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ctx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/ctx"
	"github.com/momentics/flowctx/protocol"
)

func newTestWebsocket() *protocol.Websocket {
	return protocol.NewWebsocket("/ws", nil)
}

func TestWebsocketContextLifecycle(t *testing.T) {
	app := newTestApp()
	app.route = &api.Route{Endpoint: "ws", Pattern: "/ws", Methods: []string{"GET"}, Websocket: true}
	ws := newTestWebsocket()

	wc, err := ctx.NewWebsocketContext(app, ws)
	require.NoError(t, err)
	require.Nil(t, ws.RoutingError())

	err = wc.Do(context.Background(), func(context.Context) error {
		require.True(t, ctx.HasWebsocketContext())
		require.True(t, ctx.HasAppContext())
		require.False(t, ctx.HasRequestContext())
		current, ok := ctx.CurrentWebsocket()
		require.True(t, ok)
		require.Same(t, ws, current)
		return nil
	})
	require.NoError(t, err)

	require.False(t, ctx.HasWebsocketContext())
	require.False(t, ctx.HasAppContext())
	require.Empty(t, app.requestTeardowns(), "websocket exit has no request-teardown step")
	require.Equal(t, []error{nil}, app.appTeardowns())
}

func TestWebsocketContextNonWebsocketRoute(t *testing.T) {
	app := newTestApp() // default route is not websocket-capable
	ws := newTestWebsocket()

	_, err := ctx.NewWebsocketContext(app, ws)
	require.NoError(t, err, "capability mismatch must not raise at construction")

	require.NotNil(t, ws.RoutingError())
	require.Equal(t, api.RoutingBadRequest, ws.RoutingError().Kind)
	// The matched route stays inspectable alongside the deferred failure.
	require.NotNil(t, ws.MatchedRoute())
	require.Equal(t, "index", ws.MatchedRoute().Endpoint)
}

func TestWebsocketContextRoutingFailurePassesThrough(t *testing.T) {
	app := newTestApp()
	app.routeErr = api.NewMethodNotAllowed("POST")
	ws := newTestWebsocket()

	_, err := ctx.NewWebsocketContext(app, ws)
	require.NoError(t, err)
	require.Equal(t, api.RoutingMethodNotAllowed, ws.RoutingError().Kind)
	require.Equal(t, []string{"POST"}, ws.RoutingError().Allowed)
}
