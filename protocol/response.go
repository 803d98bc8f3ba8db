// File: protocol/response.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

import "net/http"

// Response is the outgoing response after-request callbacks and the session
// store mutate before the transport writes it out.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// NewResponse builds a response with the given status and empty headers.
func NewResponse(status int) *Response {
	return &Response{StatusCode: status, Headers: make(http.Header)}
}

// TextResponse builds a plain-text response.
func TextResponse(status int, body string) *Response {
	r := NewResponse(status)
	r.Headers.Set("Content-Type", "text/plain; charset=utf-8")
	r.Body = []byte(body)
	return r
}

// SetHeader sets a header on the response.
func (r *Response) SetHeader(name, value string) {
	r.Headers.Set(name, value)
}
