// File: protocol/base.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared base of Request and Websocket. The routing outcome (matched route,
// path args, deferred routing error) is bound exactly once, by the context
// constructor; a second bind fails with api.ErrRoutingBound.

package protocol

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/momentics/flowctx/api"
)

// BaseRequestWebsocket carries the fields common to requests and websockets.
type BaseRequestWebsocket struct {
	// ID is a per-request identifier assigned at construction, used for
	// diagnostics and log correlation.
	ID uuid.UUID

	Method     string
	Path       string
	Host       string
	RemoteAddr string
	Headers    http.Header

	routingBound bool
	matchedRoute *api.Route
	pathArgs     api.PathArgs
	routingErr   *api.RoutingError
}

var _ api.Routable = (*BaseRequestWebsocket)(nil)

func newBase(method, path, host, remoteAddr string, headers http.Header) BaseRequestWebsocket {
	if headers == nil {
		headers = make(http.Header)
	}
	return BaseRequestWebsocket{
		ID:         uuid.New(),
		Method:     method,
		Path:       path,
		Host:       host,
		RemoteAddr: remoteAddr,
		Headers:    headers,
	}
}

// RoutingMethod implements api.Routable.
func (b *BaseRequestWebsocket) RoutingMethod() string { return b.Method }

// RoutingPath implements api.Routable.
func (b *BaseRequestWebsocket) RoutingPath() string { return b.Path }

// RoutingHost implements api.Routable.
func (b *BaseRequestWebsocket) RoutingHost() string { return b.Host }

// HeaderValue implements api.Routable.
func (b *BaseRequestWebsocket) HeaderValue(name string) string {
	return b.Headers.Get(name)
}

// BindRouting stores the routing outcome. route and rerr may both be
// non-nil: a websocket handshake against a matched non-websocket route
// keeps the route and carries a deferred BadRequest. Binding twice fails.
func (b *BaseRequestWebsocket) BindRouting(route *api.Route, args api.PathArgs, rerr *api.RoutingError) error {
	if b.routingBound {
		return api.ErrRoutingBound
	}
	b.routingBound = true
	b.matchedRoute = route
	b.pathArgs = args
	b.routingErr = rerr
	return nil
}

// MatchedRoute returns the matched route, nil if matching failed or never
// ran.
func (b *BaseRequestWebsocket) MatchedRoute() *api.Route { return b.matchedRoute }

// PathArgs returns the variables extracted from the matched pattern.
func (b *BaseRequestWebsocket) PathArgs() api.PathArgs { return b.pathArgs }

// RoutingError returns the deferred routing failure, nil if matching
// succeeded.
func (b *BaseRequestWebsocket) RoutingError() *api.RoutingError { return b.routingErr }
