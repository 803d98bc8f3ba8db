// File: highlevel/server.go
// Package highlevel
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The dispatch layer: an http.Handler that turns inbound traffic into
// protocol values, wraps them in contexts, runs endpoint handlers inside
// the guarded scope, applies after-request callbacks in registration
// order, saves sessions, and renders deferred routing failures. Websocket
// handshakes are matched before the upgrade, so a routing failure is
// answered as a plain HTTP error without touching the connection.

package highlevel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/ctx"
	"github.com/momentics/flowctx/facade"
	"github.com/momentics/flowctx/internal/transport"
	"github.com/momentics/flowctx/protocol"
)

// Server dispatches requests and websockets for one application.
type Server struct {
	app      *facade.Application
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

var _ http.Handler = (*Server)(nil)

// NewServer creates a dispatch server for app.
func NewServer(app *facade.Application) *Server {
	cfg := app.Config()
	return &Server{
		app:    app,
		logger: app.Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
		},
	}
}

// ListenAndServe serves on the configured address until octx is cancelled.
func (s *Server) ListenAndServe(octx context.Context) error {
	ln, err := transport.Listen(octx, s.app.Config().ListenAddr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: s}
	go func() {
		<-octx.Done()
		_ = srv.Close()
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())
	return srv.Serve(ln)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			// Teardown already ran inside the scoped context; this only
			// translates the resumed panic into a 500.
			s.logger.Error("panic while serving", "path", r.URL.Path, "panic", rec)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}()
	if websocket.IsWebSocketUpgrade(r) {
		s.serveWebsocket(w, r)
		return
	}
	s.serveRequest(w, r)
}

func (s *Server) serveRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, err := protocol.FromHTTP(r)
	if err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	logger := s.logger.With("request_id", req.ID.String(), "method", req.Method, "path", req.Path)

	rc, err := s.app.RequestContext(req)
	if err != nil {
		logger.Error("request context construction failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var resp *protocol.Response
	err = rc.Do(r.Context(), func(octx context.Context) error {
		var dispatchErr error
		resp, dispatchErr = s.dispatch(octx, rc)
		if dispatchErr != nil {
			return dispatchErr
		}
		for _, fn := range rc.ConsumeAfterRequest() {
			if err := fn(octx, resp); err != nil {
				return fmt.Errorf("after-request callback: %w", err)
			}
		}
		return s.app.SaveSession(octx, rc.Session(), resp)
	})
	if err != nil {
		logger.Error("request failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if m := s.app.Metrics(); m != nil {
		m.ObserveRequest(start)
	}
	writeResponse(w, resp)
}

// dispatch renders a deferred routing failure or runs the matched
// endpoint's handler.
func (s *Server) dispatch(octx context.Context, rc *ctx.RequestContext) (*protocol.Response, error) {
	req := rc.Request()
	if rerr := req.RoutingError(); rerr != nil {
		return renderRoutingError(rerr), nil
	}
	route := req.MatchedRoute()
	h, ok := s.app.HandlerFor(route.Endpoint)
	if !ok {
		return nil, fmt.Errorf("no handler registered for endpoint %q", route.Endpoint)
	}
	return h(octx, rc)
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws := protocol.WebsocketFromHTTP(r)
	logger := s.logger.With("request_id", ws.ID.String(), "path", ws.Path)

	wc, err := s.app.WebsocketContext(ws)
	if err != nil {
		logger.Error("websocket context construction failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if rerr := ws.RoutingError(); rerr != nil {
		writeResponse(w, renderRoutingError(rerr))
		return
	}

	h, ok := s.app.WebsocketHandlerFor(ws.MatchedRoute().Endpoint)
	if !ok {
		logger.Error("no websocket handler registered", "endpoint", ws.MatchedRoute().Endpoint)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("upgrade failed", "error", err)
		return
	}
	if err := ws.Attach(conn); err != nil {
		logger.Error("attach failed", "error", err)
		_ = conn.Close()
		return
	}
	defer func() { _ = ws.Close() }()

	if err := wc.Do(r.Context(), func(octx context.Context) error {
		return h(octx, wc)
	}); err != nil {
		logger.Error("websocket handler failed", "error", err)
	}
}

func renderRoutingError(rerr *api.RoutingError) *protocol.Response {
	resp := protocol.TextResponse(rerr.StatusCode(), rerr.Error())
	switch rerr.Kind {
	case api.RoutingMethodNotAllowed:
		for _, m := range rerr.Allowed {
			resp.Headers.Add("Allow", m)
		}
	case api.RoutingRedirectRequired:
		resp.SetHeader("Location", rerr.Location)
	}
	return resp
}

func writeResponse(w http.ResponseWriter, resp *protocol.Response) {
	for name, values := range resp.Headers {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(resp.Body)
}
