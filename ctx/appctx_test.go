// File: ctx/appctx_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ctx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/ctx"
)

func TestAppContextDo(t *testing.T) {
	app := newTestApp()
	pushed := countEvents(app, api.EventAppContextPushed)
	popped := countEvents(app, api.EventAppContextPopped)

	ac, err := ctx.NewAppContext(app)
	require.NoError(t, err)

	err = ac.Do(context.Background(), func(context.Context) error {
		require.True(t, ctx.HasAppContext())
		current, ok := ctx.CurrentApp()
		require.True(t, ok)
		require.Equal(t, app.Name(), current.Name())
		return nil
	})
	require.NoError(t, err)

	require.False(t, ctx.HasAppContext())
	require.Equal(t, []error{nil}, app.appTeardowns())
	require.Equal(t, 1, *pushed)
	require.Equal(t, 1, *popped)
}

func TestAppContextNestedPushSkipsTeardown(t *testing.T) {
	app := newTestApp()
	pushed := countEvents(app, api.EventAppContextPushed)

	ac, err := ctx.NewAppContext(app)
	require.NoError(t, err)
	octx := context.Background()

	require.NoError(t, ac.Push(octx))
	require.NoError(t, ac.Push(octx))
	// Each push announces, including the nested re-push.
	require.Equal(t, 2, *pushed)

	require.NoError(t, ac.Pop(octx, nil))
	require.Empty(t, app.appTeardowns(), "inner pop must not run teardown")
	require.True(t, ctx.HasAppContext())

	require.NoError(t, ac.Pop(octx, nil))
	require.Equal(t, []error{nil}, app.appTeardowns())
	require.False(t, ctx.HasAppContext())
}

func TestAppContextTeardownErrorStillPops(t *testing.T) {
	app := newTestApp()
	app.appTeardownErr = errors.New("teardown broke")
	popped := countEvents(app, api.EventAppContextPopped)

	ac, err := ctx.NewAppContext(app)
	require.NoError(t, err)
	octx := context.Background()

	require.NoError(t, ac.Push(octx))
	err = ac.Pop(octx, nil)
	require.ErrorIs(t, err, app.appTeardownErr)

	// The stack entry was removed before the hook error propagated, and
	// the popped event stays unsent on the failure path.
	require.False(t, ctx.HasAppContext())
	require.Equal(t, 0, *popped)
}

func TestAppContextBodyErrorReachesTeardown(t *testing.T) {
	app := newTestApp()
	ac, err := ctx.NewAppContext(app)
	require.NoError(t, err)

	bodyErr := errors.New("handler failed")
	err = ac.Do(context.Background(), func(context.Context) error {
		return bodyErr
	})
	require.ErrorIs(t, err, bodyErr)
	require.Equal(t, []error{bodyErr}, app.appTeardowns())
	require.False(t, ctx.HasAppContext())
}

func TestAppContextGlobalsScopedToInstance(t *testing.T) {
	app := newTestApp()
	ac, err := ctx.NewAppContext(app)
	require.NoError(t, err)

	require.NoError(t, ac.Do(context.Background(), func(context.Context) error {
		g, ok := ctx.CurrentGlobals()
		require.True(t, ok)
		g.Set("marker", "v1")
		return nil
	}))

	other, err := ctx.NewAppContext(app)
	require.NoError(t, err)
	require.NoError(t, other.Do(context.Background(), func(context.Context) error {
		g, ok := ctx.CurrentGlobals()
		require.True(t, ok)
		require.False(t, g.Has("marker"), "fresh app context must get a fresh globals bag")
		return nil
	}))
}
