// File: ctx/taskstack_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ctx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/ctx"
)

func TestTaskLocalStackLIFO(t *testing.T) {
	s := ctx.NewTaskLocalStack[int]()

	for i := 1; i <= 5; i++ {
		s.Push(i)
	}
	top, ok := s.Top()
	require.True(t, ok)
	require.Equal(t, 5, top)
	require.Equal(t, 5, s.Depth())

	for i := 5; i >= 1; i-- {
		v, err := s.Pop()
		require.NoError(t, err)
		require.Equal(t, i, v)
	}
	require.Equal(t, 0, s.Depth())
}

func TestTaskLocalStackPopEmpty(t *testing.T) {
	s := ctx.NewTaskLocalStack[string]()

	_, err := s.Pop()
	require.ErrorIs(t, err, api.ErrEmptyStack)

	_, ok := s.Top()
	require.False(t, ok)
}

func TestTaskLocalStackIsolation(t *testing.T) {
	s := ctx.NewTaskLocalStack[string]()
	s.Push("main")

	pushed := make(chan struct{})
	checked := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		// The other task must not see the main task's entry.
		_, ok := s.Top()
		if ok {
			t.Error("foreign task observed another task's stack")
		}
		s.Push("other")
		close(pushed)
		<-checked
		v, err := s.Pop()
		if err != nil || v != "other" {
			t.Errorf("pop on own stack: got %q, %v", v, err)
		}
	}()

	<-pushed
	top, ok := s.Top()
	require.True(t, ok)
	require.Equal(t, "main", top, "main task must not see the other task's entry")
	close(checked)
	<-done
}
