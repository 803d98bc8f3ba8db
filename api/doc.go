// File: api/doc.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package api defines the public contracts of the flowctx library: the
// application handle, routing, sessions, globals, the event bus, and the
// shared error taxonomy. Implementations live in ctx/, adapters/, facade/
// and internal/; consumers program against these interfaces only.
package api
