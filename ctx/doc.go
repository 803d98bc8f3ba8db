// File: ctx/doc.go
// Package ctx
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package ctx implements per-task context stacks: implicit access to the
// active application, the active request or websocket, and a per-app-context
// scratch space, without threading that state through every call.
//
// A task is one goroutine. Each task owns private stacks of application,
// request and websocket contexts; nothing one task pushes is ever visible
// to another. Contexts nest LIFO within a task: entering a request context
// implicitly pushes an application context (reusing the active one when
// present, tracked by reference count), and exiting unwinds in strict
// reverse order, running teardown hooks exactly once on every exit path,
// including errors and panics in the guarded body.
//
// State does not follow new goroutines spawned inside a handler; like
// thread-local storage, the stacks belong to the goroutine that entered the
// context.
package ctx
