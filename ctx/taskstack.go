// File: ctx/taskstack.go
// Package ctx
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TaskLocalStack is a stack container whose contents are isolated per task.
// Implemented as a registry keyed by task identity; each task's stack is
// created lazily on first push and the registry entry is dropped when the
// stack drains, so a terminated task leaves nothing behind.

package ctx

import (
	"sync"

	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/internal/concurrency"
)

// TaskLocalStack holds one independent stack of T per task. The zero value
// is not usable; use NewTaskLocalStack.
type TaskLocalStack[T any] struct {
	mu     sync.Mutex
	stacks map[uint64][]T
}

// NewTaskLocalStack creates an empty registry.
func NewTaskLocalStack[T any]() *TaskLocalStack[T] {
	return &TaskLocalStack[T]{stacks: make(map[uint64][]T)}
}

// Push appends item to the calling task's stack.
func (s *TaskLocalStack[T]) Push(item T) {
	id := concurrency.TaskID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stacks[id] = append(s.stacks[id], item)
}

// Pop removes and returns the top of the calling task's stack. It fails
// with api.ErrEmptyStack when the task pushed nothing.
func (s *TaskLocalStack[T]) Pop() (T, error) {
	id := concurrency.TaskID()
	s.mu.Lock()
	defer s.mu.Unlock()
	stack := s.stacks[id]
	if len(stack) == 0 {
		var zero T
		return zero, api.ErrEmptyStack
	}
	item := stack[len(stack)-1]
	if len(stack) == 1 {
		delete(s.stacks, id)
	} else {
		s.stacks[id] = stack[:len(stack)-1]
	}
	return item, nil
}

// Top returns the calling task's current top without removing it. The
// second result is false when the stack is empty; Top never fails.
func (s *TaskLocalStack[T]) Top() (T, bool) {
	id := concurrency.TaskID()
	s.mu.Lock()
	defer s.mu.Unlock()
	stack := s.stacks[id]
	if len(stack) == 0 {
		var zero T
		return zero, false
	}
	return stack[len(stack)-1], true
}

// Depth returns the calling task's stack depth.
func (s *TaskLocalStack[T]) Depth() int {
	id := concurrency.TaskID()
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stacks[id])
}
