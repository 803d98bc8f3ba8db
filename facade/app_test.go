// File: facade/app_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/flowctx/ctx"
	"github.com/momentics/flowctx/facade"
	"github.com/momentics/flowctx/protocol"
)

func TestTeardownHooksRunInReverseOrder(t *testing.T) {
	app := facade.New("t")
	defer app.Close()

	var order []string
	app.TeardownAppContext(func(context.Context, error) error {
		order = append(order, "first")
		return nil
	})
	app.TeardownAppContext(func(context.Context, error) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, app.RunAppContextTeardown(context.Background(), nil))
	require.Equal(t, []string{"second", "first"}, order)
}

func TestApplicationDrivesAppContext(t *testing.T) {
	app := facade.New("t")
	defer app.Close()

	torn := 0
	app.TeardownAppContext(func(context.Context, error) error {
		torn++
		return nil
	})

	ac, err := app.AppContext()
	require.NoError(t, err)
	require.NoError(t, ac.Do(context.Background(), func(context.Context) error {
		require.True(t, ctx.HasAppContext())
		g, ok := ctx.CurrentGlobals()
		require.True(t, ok)
		g.Set("cache", "warm")
		return nil
	}))
	require.Equal(t, 1, torn)
	require.False(t, ctx.HasAppContext())
}

func TestMetricsCollectorCountsLifecycle(t *testing.T) {
	app := facade.New("t")
	defer app.Close()
	require.NotNil(t, app.Metrics())

	ac, err := app.AppContext()
	require.NoError(t, err)
	require.NoError(t, ac.Do(context.Background(), func(context.Context) error { return nil }))

	require.EqualValues(t, 1, app.Metrics().AppContextPushed())
	require.EqualValues(t, 1, app.Metrics().AppContextPopped())
}

func TestRequestContextConstruction(t *testing.T) {
	app := facade.New("t")
	defer app.Close()
	app.Route("index", "/", func(context.Context, *ctx.RequestContext) (*protocol.Response, error) {
		return protocol.TextResponse(http.StatusOK, "ok"), nil
	})

	req := protocol.NewRequest(http.MethodGet, "/", nil)
	rc, err := app.RequestContext(req)
	require.NoError(t, err)
	require.Nil(t, req.RoutingError())
	require.Equal(t, "index", req.MatchedRoute().Endpoint)
	require.Same(t, req, rc.Request())
}

func TestDefaultConfig(t *testing.T) {
	cfg := facade.DefaultConfig()
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Positive(t, cfg.SessionTTL)
	require.True(t, cfg.EnableMetrics)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9999\"\nenable_metrics: false\n"), 0o600))

	cfg, err := facade.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.ListenAddr)
	require.False(t, cfg.EnableMetrics)
	// Untouched fields keep their defaults.
	require.Equal(t, facade.DefaultConfig().SessionTTL, cfg.SessionTTL)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := facade.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
