// File: internal/concurrency/taskid.go
// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Task identity for task-local storage. A task is one goroutine; the id is
// recovered from the runtime stack header, the established pattern for
// thread-local-equivalent state in Go. The id is stable for the lifetime of
// the goroutine and never reused while it runs.

package concurrency

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// TaskID returns the identity of the calling task.
func TaskID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	// The header line reads "goroutine 123 [running]:".
	fields := bytes.Fields(bytes.TrimPrefix(buf[:n], goroutinePrefix))
	if len(fields) == 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[0]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
