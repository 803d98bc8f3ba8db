// File: protocol/request.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

import (
	"io"
	"net/http"
)

// Request is one inbound HTTP request as seen by the context layer.
type Request struct {
	BaseRequestWebsocket

	// Body is the request payload. Loaded eagerly by FromHTTP so handler
	// code never touches the raw connection.
	Body []byte
}

// NewRequest builds a request from its parts. Used by tests and by
// transports that do not go through net/http.
func NewRequest(method, path string, headers http.Header) *Request {
	return &Request{BaseRequestWebsocket: newBase(method, path, headerHost(headers), "", headers)}
}

// FromHTTP converts a net/http request into a protocol.Request.
func FromHTTP(r *http.Request) (*Request, error) {
	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		body = b
	}
	req := &Request{
		BaseRequestWebsocket: newBase(r.Method, r.URL.Path, r.Host, r.RemoteAddr, r.Header),
		Body:                 body,
	}
	return req, nil
}

func headerHost(headers http.Header) string {
	if headers == nil {
		return ""
	}
	return headers.Get("Host")
}
