// File: internal/transport/sockopt_linux.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux

package transport

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// controlSocket enables address reuse so restarts do not wait out
// TIME_WAIT sockets.
func controlSocket(network, address string, c syscall.RawConn) error {
	var opErr error
	err := c.Control(func(fd uintptr) {
		opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return opErr
}
