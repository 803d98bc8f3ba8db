// File: api/errors.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error types shared across the library. Routing failures are a
// special case: they are recorded as deferred data on the request or
// websocket value at construction time and rendered by the dispatch layer,
// never raised while a context is being built.

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors used across the library.
var (
	// ErrEmptyStack is returned when popping a task-local stack that holds
	// nothing for the calling task. This is a programmer error.
	ErrEmptyStack = errors.New("pop from empty task-local stack")

	// ErrNoActiveContext is returned by operations that require an active
	// request context, such as AfterThisRequest, when none is active for
	// the calling task.
	ErrNoActiveContext = errors.New("no active context for this task")

	// ErrKeyNotFound is returned by Globals.Pop when the key is absent and
	// no default was supplied.
	ErrKeyNotFound = errors.New("key not found")

	// ErrRoutingBound is returned when binding a routing outcome to a
	// request or websocket value that already carries one. The outcome is
	// settable exactly once.
	ErrRoutingBound = errors.New("routing outcome already bound")

	// ErrAdapterUnbound is returned by Match on a server-bound adapter that
	// was created without a request or websocket. Such adapters support URL
	// building only.
	ErrAdapterUnbound = errors.New("route adapter is not bound to a request")
)

// RoutingKind enumerates the deferred routing failure categories.
type RoutingKind int

const (
	RoutingNotFound RoutingKind = iota
	RoutingMethodNotAllowed
	RoutingRedirectRequired
	RoutingBadRequest
)

// RoutingError is a deferred routing failure. It is stored on the request
// or websocket value by the context constructor and inspected by the
// dispatch layer, which decides how to render it as a response.
type RoutingError struct {
	Kind RoutingKind
	// Allowed lists the permitted methods for RoutingMethodNotAllowed.
	Allowed []string
	// Location is the redirect target for RoutingRedirectRequired.
	Location string
}

// Error implements the error interface.
func (e *RoutingError) Error() string {
	switch e.Kind {
	case RoutingNotFound:
		return "routing: not found"
	case RoutingMethodNotAllowed:
		return fmt.Sprintf("routing: method not allowed (allowed: %s)", strings.Join(e.Allowed, ", "))
	case RoutingRedirectRequired:
		return fmt.Sprintf("routing: redirect required to %s", e.Location)
	case RoutingBadRequest:
		return "routing: bad request"
	default:
		return "routing: unknown failure"
	}
}

// StatusCode maps the failure to the HTTP status the dispatch layer should
// render.
func (e *RoutingError) StatusCode() int {
	switch e.Kind {
	case RoutingNotFound:
		return http.StatusNotFound
	case RoutingMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case RoutingRedirectRequired:
		return http.StatusPermanentRedirect
	case RoutingBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewNotFound reports that no route matched the path.
func NewNotFound() *RoutingError {
	return &RoutingError{Kind: RoutingNotFound}
}

// NewMethodNotAllowed reports that the path matched but not for this method.
func NewMethodNotAllowed(allowed ...string) *RoutingError {
	return &RoutingError{Kind: RoutingMethodNotAllowed, Allowed: allowed}
}

// NewRedirectRequired reports that a canonical form of the path matches.
func NewRedirectRequired(location string) *RoutingError {
	return &RoutingError{Kind: RoutingRedirectRequired, Location: location}
}

// NewBadRequest reports a request the matched route cannot serve, such as a
// websocket handshake against a route without websocket support.
func NewBadRequest() *RoutingError {
	return &RoutingError{Kind: RoutingBadRequest}
}

// AsRoutingError unwraps err into a RoutingError if it is one.
func AsRoutingError(err error) (*RoutingError, bool) {
	var rerr *RoutingError
	if errors.As(err, &rerr) {
		return rerr, true
	}
	return nil, false
}
