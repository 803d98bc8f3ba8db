// File: highlevel/server_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package highlevel_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/momentics/flowctx/ctx"
	"github.com/momentics/flowctx/facade"
	"github.com/momentics/flowctx/highlevel"
	"github.com/momentics/flowctx/protocol"
)

func newTestApp(t *testing.T) *facade.Application {
	t.Helper()
	app := facade.New("test")
	t.Cleanup(app.Close)

	app.Route("index", "/", func(context.Context, *ctx.RequestContext) (*protocol.Response, error) {
		return protocol.TextResponse(http.StatusOK, "index"), nil
	})
	app.Route("echo", "/echo", func(_ context.Context, rc *ctx.RequestContext) (*protocol.Response, error) {
		if err := ctx.AfterThisRequest(func(_ context.Context, resp *protocol.Response) error {
			resp.SetHeader("X-Post-Processed", "1")
			return nil
		}); err != nil {
			return nil, err
		}
		return protocol.TextResponse(http.StatusOK, string(rc.Request().Body)), nil
	}, http.MethodPost)
	app.Route("fail", "/fail", func(context.Context, *ctx.RequestContext) (*protocol.Response, error) {
		return nil, errors.New("handler blew up")
	})
	app.Route("remember", "/remember", func(_ context.Context, rc *ctx.RequestContext) (*protocol.Response, error) {
		rc.Session().Set("seen", true)
		return protocol.TextResponse(http.StatusOK, "ok"), nil
	})
	app.WebsocketRoute("ws-echo", "/ws", func(_ context.Context, wc *ctx.WebsocketContext) error {
		mt, msg, err := wc.Websocket().Receive()
		if err != nil {
			return nil
		}
		return wc.Websocket().Send(mt, msg)
	})
	return app
}

func do(t *testing.T, s *highlevel.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServeMatchedRequest(t *testing.T) {
	s := highlevel.NewServer(newTestApp(t))

	rec := do(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "index", rec.Body.String())
}

func TestServeAppliesAfterRequestCallbacks(t *testing.T) {
	s := highlevel.NewServer(newTestApp(t))

	rec := do(t, s, http.MethodPost, "/echo", "ping")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ping", rec.Body.String())
	require.Equal(t, "1", rec.Header().Get("X-Post-Processed"))
}

func TestServeRendersNotFound(t *testing.T) {
	s := highlevel.NewServer(newTestApp(t))

	rec := do(t, s, http.MethodGet, "/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeRendersMethodNotAllowed(t *testing.T) {
	s := highlevel.NewServer(newTestApp(t))

	rec := do(t, s, http.MethodDelete, "/echo", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Contains(t, rec.Header().Values("Allow"), http.MethodPost)
}

func TestServeRendersRedirect(t *testing.T) {
	s := highlevel.NewServer(newTestApp(t))

	rec := do(t, s, http.MethodPost, "/echo/", "")
	require.Equal(t, http.StatusPermanentRedirect, rec.Code)
	require.Equal(t, "/echo", rec.Header().Get("Location"))
}

func TestServeHandlerError(t *testing.T) {
	app := newTestApp(t)
	var torn []error
	app.TeardownRequest(func(_ context.Context, cause error) error {
		torn = append(torn, cause)
		return nil
	})
	s := highlevel.NewServer(app)

	rec := do(t, s, http.MethodGet, "/fail", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, torn, 1)
	require.Error(t, torn[0], "teardown must receive the handler failure")
}

func TestServeSetsSessionCookie(t *testing.T) {
	s := highlevel.NewServer(newTestApp(t))

	rec := do(t, s, http.MethodGet, "/remember", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Set-Cookie"), "flowctx_session=")
}

func TestWebsocketHandshakeAgainstPlainRoute(t *testing.T) {
	s := highlevel.NewServer(newTestApp(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	// Matched route lacks websocket capability: deferred BadRequest, no
	// upgrade attempted.
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebsocketEcho(t *testing.T) {
	s := highlevel.NewServer(newTestApp(t))
	srv := httptest.NewServer(s)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "hello", string(msg))
}
