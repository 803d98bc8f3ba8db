// File: facade/app.go
// Package facade
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Application is the default api.App: it aggregates the router, session
// store, event bus, logger and metrics behind one handle, keeps the
// teardown hook and endpoint handler registries, and hands out the three
// context constructors. The handle is long-lived and safe to share across
// tasks; contexts built from it are not.

package facade

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/momentics/flowctx/adapters"
	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/ctx"
	"github.com/momentics/flowctx/internal/eventbus"
	"github.com/momentics/flowctx/internal/metrics"
	"github.com/momentics/flowctx/internal/session"
	"github.com/momentics/flowctx/protocol"
)

// Handler serves one matched request.
type Handler func(octx context.Context, rc *ctx.RequestContext) (*protocol.Response, error)

// WebsocketHandler serves one accepted websocket.
type WebsocketHandler func(octx context.Context, wc *ctx.WebsocketContext) error

// Application implements api.App.
type Application struct {
	name   string
	cfg    *Config
	logger *slog.Logger

	router    *adapters.Router
	sessions  *session.MemoryStore
	events    api.EventBus
	collector *metrics.Collector

	mu                sync.RWMutex
	requestTeardown   []api.TeardownFunc
	appCtxTeardown    []api.TeardownFunc
	handlers          map[string]Handler
	websocketHandlers map[string]WebsocketHandler
}

var _ api.App = (*Application)(nil)

// Option customizes an Application at construction.
type Option func(*Application)

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(a *Application) { a.cfg = cfg }
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Application) { a.logger = logger }
}

// WithEventBus replaces the default in-process bus.
func WithEventBus(bus api.EventBus) Option {
	return func(a *Application) { a.events = bus }
}

// New creates an application with a chi-backed router, an in-memory
// session store and a synchronous event bus.
func New(name string, opts ...Option) *Application {
	a := &Application{
		name:              name,
		cfg:               DefaultConfig(),
		logger:            slog.Default(),
		router:            adapters.NewRouter(),
		events:            eventbus.New(),
		handlers:          make(map[string]Handler),
		websocketHandlers: make(map[string]WebsocketHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.sessions = session.NewMemoryStore(time.Duration(a.cfg.SessionTTL))
	if a.cfg.EnableMetrics {
		a.collector = metrics.NewCollector(a.events)
	}
	a.logger = a.logger.With("app", name)
	return a
}

// Name implements api.App.
func (a *Application) Name() string { return a.name }

// Config returns the application configuration.
func (a *Application) Config() *Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// Router returns the route table for registration.
func (a *Application) Router() *adapters.Router { return a.router }

// Events implements api.App.
func (a *Application) Events() api.EventBus { return a.events }

// Metrics returns the lifecycle collector, nil when metrics are disabled.
func (a *Application) Metrics() *metrics.Collector { return a.collector }

// CreateAdapter implements api.App.
func (a *Application) CreateAdapter(target api.Routable) (api.RouteAdapter, error) {
	return a.router.CreateAdapter(target)
}

// OpenSession implements api.App.
func (a *Application) OpenSession(octx context.Context, target api.Routable) (api.Session, error) {
	return a.sessions.OpenSession(octx, target)
}

// MakeNullSession implements api.App.
func (a *Application) MakeNullSession() api.Session {
	return a.sessions.MakeNullSession()
}

// SaveSession persists a modified session onto the outgoing response.
func (a *Application) SaveSession(octx context.Context, s api.Session, resp *protocol.Response) error {
	return a.sessions.SaveSession(octx, s, resp)
}

// NewGlobals implements api.App.
func (a *Application) NewGlobals() api.Globals { return ctx.NewAppGlobals() }

// TeardownRequest registers a request teardown hook. Hooks run in reverse
// registration order.
func (a *Application) TeardownRequest(fn api.TeardownFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requestTeardown = append(a.requestTeardown, fn)
}

// TeardownAppContext registers an app context teardown hook. Hooks run in
// reverse registration order when a context's reference count reaches
// zero.
func (a *Application) TeardownAppContext(fn api.TeardownFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.appCtxTeardown = append(a.appCtxTeardown, fn)
}

// RunRequestTeardown implements api.App.
func (a *Application) RunRequestTeardown(octx context.Context, cause error) error {
	return a.runTeardown(octx, a.snapshotHooks(&a.requestTeardown), cause)
}

// RunAppContextTeardown implements api.App.
func (a *Application) RunAppContextTeardown(octx context.Context, cause error) error {
	return a.runTeardown(octx, a.snapshotHooks(&a.appCtxTeardown), cause)
}

func (a *Application) snapshotHooks(hooks *[]api.TeardownFunc) []api.TeardownFunc {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]api.TeardownFunc, len(*hooks))
	copy(out, *hooks)
	return out
}

func (a *Application) runTeardown(octx context.Context, hooks []api.TeardownFunc, cause error) error {
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](octx, cause); err != nil {
			return err
		}
	}
	return nil
}

// Route registers a handler for the endpoint and binds its route.
func (a *Application) Route(endpoint, pattern string, h Handler, methods ...string) {
	a.router.Handle(endpoint, pattern, methods...)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handlers[endpoint] = h
}

// WebsocketRoute registers a websocket handler for the endpoint.
func (a *Application) WebsocketRoute(endpoint, pattern string, h WebsocketHandler) {
	a.router.HandleWebsocket(endpoint, pattern)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.websocketHandlers[endpoint] = h
}

// HandlerFor resolves the handler registered under endpoint.
func (a *Application) HandlerFor(endpoint string) (Handler, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	h, ok := a.handlers[endpoint]
	return h, ok
}

// WebsocketHandlerFor resolves the websocket handler for endpoint.
func (a *Application) WebsocketHandlerFor(endpoint string) (WebsocketHandler, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	h, ok := a.websocketHandlers[endpoint]
	return h, ok
}

// AppContext builds a bare application context, for background work or
// CLI-style invocations outside any request.
func (a *Application) AppContext() (*ctx.AppContext, error) {
	return ctx.NewAppContext(a)
}

// RequestContext builds the context for one inbound request, matching it
// immediately.
func (a *Application) RequestContext(req *protocol.Request) (*ctx.RequestContext, error) {
	return ctx.NewRequestContext(a, req)
}

// WebsocketContext builds the context for one inbound websocket handshake.
func (a *Application) WebsocketContext(ws *protocol.Websocket) (*ctx.WebsocketContext, error) {
	return ctx.NewWebsocketContext(a, ws)
}

// Close releases background resources: the session janitor and the metrics
// subscriptions.
func (a *Application) Close() {
	a.sessions.Close()
	if a.collector != nil {
		a.collector.Close()
	}
}
