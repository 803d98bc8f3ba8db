// File: protocol/doc.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package protocol holds the value types the transport layer produces from
// raw connections: Request, Websocket and Response. Request and Websocket
// share a common base carrying identification, routing inputs, and the
// mutable routing outcome fields the context layer binds exactly once.
package protocol
