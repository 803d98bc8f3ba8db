// File: internal/transport/listener.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Listener construction for the dispatch layer. Platform socket options
// (address reuse) are applied through the ListenConfig control hook; the
// linux implementation lives in sockopt_linux.go with a stub elsewhere.

package transport

import (
	"context"
	"fmt"
	"net"
	"time"
)

// Listen opens a TCP listener on addr with keep-alive and the platform
// socket options applied.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{
		Control:   controlSocket,
		KeepAlive: 30 * time.Second,
	}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	return ln, nil
}
