// File: ctx/apptest_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared test doubles: a stub application handle with a scripted route
// table, scripted session behavior and recording teardown hooks.

package ctx_test

import (
	"context"
	"sync"

	"github.com/momentics/flowctx/api"
	"github.com/momentics/flowctx/ctx"
	"github.com/momentics/flowctx/internal/eventbus"
	"github.com/momentics/flowctx/internal/session"
)

type stubAdapter struct {
	route *api.Route
	args  api.PathArgs
	err   error
}

func (a *stubAdapter) Match() (*api.Route, api.PathArgs, error) {
	if a.err != nil {
		return nil, nil, a.err
	}
	return a.route, a.args, nil
}

func (a *stubAdapter) Build(string, api.PathArgs) (string, error) { return "", nil }

type testApp struct {
	name string
	bus  api.EventBus

	route    *api.Route
	routeErr error

	session api.Session // nil means the store declines
	openErr error

	reqTeardownErr error
	appTeardownErr error

	mu              sync.Mutex
	reqTeardownSeen []error
	appTeardownSeen []error
}

func newTestApp() *testApp {
	return &testApp{
		name: "testapp",
		bus:  eventbus.New(),
		route: &api.Route{
			Endpoint: "index",
			Pattern:  "/",
			Methods:  []string{"GET"},
		},
		session: session.NullSession{},
	}
}

func (a *testApp) Name() string { return a.name }

func (a *testApp) CreateAdapter(api.Routable) (api.RouteAdapter, error) {
	return &stubAdapter{route: a.route, args: api.PathArgs{}, err: a.routeErr}, nil
}

func (a *testApp) OpenSession(context.Context, api.Routable) (api.Session, error) {
	return a.session, a.openErr
}

func (a *testApp) MakeNullSession() api.Session { return session.NullSession{} }

func (a *testApp) RunRequestTeardown(_ context.Context, cause error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reqTeardownSeen = append(a.reqTeardownSeen, cause)
	return a.reqTeardownErr
}

func (a *testApp) RunAppContextTeardown(_ context.Context, cause error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.appTeardownSeen = append(a.appTeardownSeen, cause)
	return a.appTeardownErr
}

func (a *testApp) NewGlobals() api.Globals { return ctx.NewAppGlobals() }

func (a *testApp) Events() api.EventBus { return a.bus }

func (a *testApp) requestTeardowns() []error {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]error, len(a.reqTeardownSeen))
	copy(out, a.reqTeardownSeen)
	return out
}

func (a *testApp) appTeardowns() []error {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]error, len(a.appTeardownSeen))
	copy(out, a.appTeardownSeen)
	return out
}

// countEvents subscribes a counter to name on the app's bus.
func countEvents(a *testApp, name string) *int {
	n := new(int)
	a.bus.Subscribe(name, func(context.Context, string, any) error {
		*n++
		return nil
	})
	return n
}
