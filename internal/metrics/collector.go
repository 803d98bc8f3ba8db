// File: internal/metrics/collector.go
// Package metrics
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lifecycle metrics fed by the event bus: counters for app context pushes
// and pops, plus a request timer the dispatch layer updates. The collector
// is a plain subscriber; the context layer stays unaware of it.

package metrics

import (
	"context"
	"time"

	gometrics "github.com/rcrowley/go-metrics"

	"github.com/momentics/flowctx/api"
)

// Collector aggregates lifecycle metrics for one application.
type Collector struct {
	registry gometrics.Registry

	appCtxPushed gometrics.Counter
	appCtxPopped gometrics.Counter
	requests     gometrics.Timer

	unsubscribe []func()
}

// NewCollector builds a collector on a fresh registry and subscribes it to
// the app context lifecycle events on bus.
func NewCollector(bus api.EventBus) *Collector {
	r := gometrics.NewRegistry()
	c := &Collector{
		registry:     r,
		appCtxPushed: gometrics.GetOrRegisterCounter("flowctx.appcontext.pushed", r),
		appCtxPopped: gometrics.GetOrRegisterCounter("flowctx.appcontext.popped", r),
		requests:     gometrics.GetOrRegisterTimer("flowctx.requests", r),
	}
	c.unsubscribe = append(c.unsubscribe,
		bus.Subscribe(api.EventAppContextPushed, func(context.Context, string, any) error {
			c.appCtxPushed.Inc(1)
			return nil
		}),
		bus.Subscribe(api.EventAppContextPopped, func(context.Context, string, any) error {
			c.appCtxPopped.Inc(1)
			return nil
		}),
	)
	return c
}

// Registry exposes the backing registry for export.
func (c *Collector) Registry() gometrics.Registry { return c.registry }

// ObserveRequest records one dispatched request that started at start.
func (c *Collector) ObserveRequest(start time.Time) {
	c.requests.UpdateSince(start)
}

// AppContextPushed returns the push count.
func (c *Collector) AppContextPushed() int64 { return c.appCtxPushed.Count() }

// AppContextPopped returns the pop count.
func (c *Collector) AppContextPopped() int64 { return c.appCtxPopped.Count() }

// Close detaches the collector from the bus.
func (c *Collector) Close() {
	for _, u := range c.unsubscribe {
		u()
	}
	c.unsubscribe = nil
}
