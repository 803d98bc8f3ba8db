// File: api/router.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Routing contracts. A Router produces RouteAdapters bound either to one
// incoming request/websocket (matching and building) or to the server alone
// (building only, used by application contexts for URL construction).

package api

// Routable is the view of a request or websocket value the router and the
// session store need: enough to match a route and locate session state.
type Routable interface {
	// RoutingMethod returns the HTTP method of the handshake or request.
	RoutingMethod() string
	// RoutingPath returns the URL path to match.
	RoutingPath() string
	// RoutingHost returns the Host header value, empty if unknown.
	RoutingHost() string
	// HeaderValue returns the first value of the named header, or "".
	HeaderValue(name string) string
}

// PathArgs holds the variables extracted from a matched route pattern.
type PathArgs map[string]string

// Route describes one registered route.
type Route struct {
	// Endpoint is the stable handler name the dispatcher resolves.
	Endpoint string
	// Pattern is the router pattern the route was registered under.
	Pattern string
	// Methods lists the HTTP methods this route accepts.
	Methods []string
	// Websocket reports whether the route can serve websocket handshakes.
	Websocket bool
}

// RouteAdapter is a matcher bound at construction to at most one routable
// value. Match is performed exactly once per request, by the context
// constructor, before the context is ever entered.
type RouteAdapter interface {
	// Match resolves the bound routable against the route table. On failure
	// it returns a *RoutingError (NotFound, MethodNotAllowed or
	// RedirectRequired); it returns ErrAdapterUnbound when the adapter was
	// created without a routable.
	Match() (*Route, PathArgs, error)

	// Build constructs a URL path for the named endpoint, substituting args
	// into the route pattern. Available on server-bound adapters too.
	Build(endpoint string, args PathArgs) (string, error)
}

// Router creates adapters. target may be nil for a server-bound adapter.
type Router interface {
	CreateAdapter(target Routable) (RouteAdapter, error)
}
