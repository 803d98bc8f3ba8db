// File: ctx/stacks.go
// Package ctx
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The process-wide task-local stacks the context types push onto. Each
// task sees only its own slice of each stack; the accessors in this package
// are the supported way to observe them.

package ctx

var (
	appCtxStack       = NewTaskLocalStack[*AppContext]()
	requestCtxStack   = NewTaskLocalStack[*RequestContext]()
	websocketCtxStack = NewTaskLocalStack[*WebsocketContext]()
)
