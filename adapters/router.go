// File: adapters/router.go
// Package adapters
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// chi-backed implementation of api.Router. The chi mux is used purely as a
// matching engine: routes are registered with no-op handlers and resolved
// through chi's route context, while this package keeps its own table of
// endpoint names and websocket capability. Match distinguishes NotFound,
// MethodNotAllowed (by probing the other methods) and RedirectRequired
// (by probing the trailing-slash variant of the path).

package adapters

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/momentics/flowctx/api"
)

var probeMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodConnect,
	http.MethodOptions, http.MethodTrace,
}

// Router is a route table on top of a chi mux.
type Router struct {
	mu         sync.RWMutex
	mux        *chi.Mux
	byPattern  map[string]map[string]*api.Route // pattern -> method -> route
	byEndpoint map[string]*api.Route
}

var _ api.Router = (*Router)(nil)

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		mux:        chi.NewRouter(),
		byPattern:  make(map[string]map[string]*api.Route),
		byEndpoint: make(map[string]*api.Route),
	}
}

// Handle registers pattern for the given methods under the endpoint name.
func (r *Router) Handle(endpoint, pattern string, methods ...string) *api.Route {
	return r.register(endpoint, pattern, methods, false)
}

// HandleWebsocket registers a websocket-capable GET route.
func (r *Router) HandleWebsocket(endpoint, pattern string) *api.Route {
	return r.register(endpoint, pattern, []string{http.MethodGet}, true)
}

func (r *Router) register(endpoint, pattern string, methods []string, websocket bool) *api.Route {
	if len(methods) == 0 {
		methods = []string{http.MethodGet}
	}
	route := &api.Route{
		Endpoint:  endpoint,
		Pattern:   pattern,
		Methods:   methods,
		Websocket: websocket,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range methods {
		// The handler is never invoked; matching goes through the route
		// context only.
		r.mux.Method(m, pattern, http.NotFoundHandler())
		if r.byPattern[pattern] == nil {
			r.byPattern[pattern] = make(map[string]*api.Route)
		}
		r.byPattern[pattern][m] = route
	}
	r.byEndpoint[endpoint] = route
	return route
}

// CreateAdapter implements api.Router. target may be nil for a server-bound
// adapter that supports Build only.
func (r *Router) CreateAdapter(target api.Routable) (api.RouteAdapter, error) {
	return &routeAdapter{router: r, target: target}, nil
}

type routeAdapter struct {
	router *Router
	target api.Routable
}

var _ api.RouteAdapter = (*routeAdapter)(nil)

// Match implements api.RouteAdapter.
func (a *routeAdapter) Match() (*api.Route, api.PathArgs, error) {
	if a.target == nil {
		return nil, nil, api.ErrAdapterUnbound
	}
	method := a.target.RoutingMethod()
	path := a.target.RoutingPath()

	a.router.mu.RLock()
	defer a.router.mu.RUnlock()

	rctx := chi.NewRouteContext()
	if a.router.mux.Match(rctx, method, path) {
		pattern := rctx.RoutePattern()
		route := a.router.byPattern[pattern][method]
		if route == nil {
			return nil, nil, fmt.Errorf("matched pattern %q has no registered route", pattern)
		}
		args := make(api.PathArgs, len(rctx.URLParams.Keys))
		for i, k := range rctx.URLParams.Keys {
			if k == "*" {
				continue
			}
			args[k] = rctx.URLParams.Values[i]
		}
		return route, args, nil
	}

	// The path exists under a different method.
	var allowed []string
	for _, m := range probeMethods {
		if m == method {
			continue
		}
		probe := chi.NewRouteContext()
		if a.router.mux.Match(probe, m, path) {
			allowed = append(allowed, m)
		}
	}
	if len(allowed) > 0 {
		return nil, nil, api.NewMethodNotAllowed(allowed...)
	}

	// The canonical slash variant exists.
	if alt := toggleTrailingSlash(path); alt != path {
		probe := chi.NewRouteContext()
		if a.router.mux.Match(probe, method, alt) {
			return nil, nil, api.NewRedirectRequired(alt)
		}
	}

	return nil, nil, api.NewNotFound()
}

// Build implements api.RouteAdapter.
func (a *routeAdapter) Build(endpoint string, args api.PathArgs) (string, error) {
	a.router.mu.RLock()
	route, ok := a.router.byEndpoint[endpoint]
	a.router.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown endpoint %q", endpoint)
	}
	segments := strings.Split(route.Pattern, "/")
	for i, seg := range segments {
		if len(seg) >= 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
			name := seg[1 : len(seg)-1]
			v, ok := args[name]
			if !ok {
				return "", fmt.Errorf("endpoint %q: missing path arg %q", endpoint, name)
			}
			segments[i] = v
		}
	}
	return strings.Join(segments, "/"), nil
}

func toggleTrailingSlash(path string) string {
	if path == "/" || path == "" {
		return path
	}
	if strings.HasSuffix(path, "/") {
		return strings.TrimSuffix(path, "/")
	}
	return path + "/"
}
