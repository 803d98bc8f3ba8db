// File: protocol/websocket.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Websocket wraps one accepted websocket connection. The value is built
// from the handshake request before the upgrade, so route matching and the
// deferred BadRequest check run without touching the network; the upgraded
// connection is attached afterwards, at most once.

package protocol

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
)

// ErrConnAttached is returned by Attach when a connection is already bound.
var ErrConnAttached = errors.New("websocket connection already attached")

// ErrConnNotAttached is returned by IO methods before the upgrade happened.
var ErrConnNotAttached = errors.New("websocket connection not attached")

// Websocket is one inbound websocket handshake plus, after upgrade, its
// connection.
type Websocket struct {
	BaseRequestWebsocket

	conn *websocket.Conn
}

// NewWebsocket builds a websocket value from its handshake parts.
func NewWebsocket(path string, headers http.Header) *Websocket {
	return &Websocket{BaseRequestWebsocket: newBase(http.MethodGet, path, headerHost(headers), "", headers)}
}

// WebsocketFromHTTP builds a websocket value from the handshake request.
func WebsocketFromHTTP(r *http.Request) *Websocket {
	return &Websocket{BaseRequestWebsocket: newBase(r.Method, r.URL.Path, r.Host, r.RemoteAddr, r.Header)}
}

// Attach binds the upgraded connection. Attaching twice fails.
func (w *Websocket) Attach(conn *websocket.Conn) error {
	if w.conn != nil {
		return ErrConnAttached
	}
	w.conn = conn
	return nil
}

// Attached reports whether the upgrade completed and IO is possible.
func (w *Websocket) Attached() bool { return w.conn != nil }

// Receive reads the next message from the peer.
func (w *Websocket) Receive() (messageType int, data []byte, err error) {
	if w.conn == nil {
		return 0, nil, ErrConnNotAttached
	}
	return w.conn.ReadMessage()
}

// Send writes one message to the peer.
func (w *Websocket) Send(messageType int, data []byte) error {
	if w.conn == nil {
		return ErrConnNotAttached
	}
	return w.conn.WriteMessage(messageType, data)
}

// Close closes the underlying connection if attached.
func (w *Websocket) Close() error {
	if w.conn == nil {
		return nil
	}
	return w.conn.Close()
}
