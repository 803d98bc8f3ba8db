// File: internal/transport/sockopt_stub.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build !linux

package transport

import "syscall"

// controlSocket is a no-op on platforms without the linux sockopt path.
func controlSocket(network, address string, c syscall.RawConn) error {
	return nil
}
