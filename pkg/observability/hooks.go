// Package observability lets callers watch the chart pipeline without the
// libraries importing a metrics or tracing backend.
//
// Events flow to a process-wide [Hooks] bundle. Until [Set] is called every
// event goes to [Noop]:
//
//	observability.Set(observability.Hooks{Pipeline: myMetrics})
//	defer observability.Reset()
//
// Library code fetches the current receiver at the call site:
//
//	observability.Pipeline().OnLayoutStart(ctx, "stacked", len(data))
//
// [NewLogHooks] reports every event to a charmbracelet logger.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives the stage events of one chart run. Layout covers
// both the layout engine and scene assembly; its size is the input in bytes.
type PipelineHooks interface {
	OnFetchStart(ctx context.Context, dataset string)
	OnFetchComplete(ctx context.Context, dataset string, size int, duration time.Duration, err error)
	OnLayoutStart(ctx context.Context, chart string, size int)
	OnLayoutComplete(ctx context.Context, chart string, primitives int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives lookups and writes. keyType is "source" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives the requests made to the data service. OnError is
// called for transport failures only; HTTP error statuses go to OnResponse.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// Hooks bundles one receiver per event family. A nil field keeps [Noop].
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

// Noop discards every event.
type Noop struct{}

func (Noop) OnFetchStart(context.Context, string)                                   {}
func (Noop) OnFetchComplete(context.Context, string, int, time.Duration, error)     {}
func (Noop) OnLayoutStart(context.Context, string, int)                             {}
func (Noop) OnLayoutComplete(context.Context, string, int, time.Duration, error)    {}
func (Noop) OnRenderStart(context.Context, []string)                                {}
func (Noop) OnRenderComplete(context.Context, []string, time.Duration, error)       {}
func (Noop) OnCacheHit(context.Context, string)                                     {}
func (Noop) OnCacheMiss(context.Context, string)                                    {}
func (Noop) OnCacheSet(context.Context, string, int)                                {}
func (Noop) OnRequest(context.Context, string, string, string)                      {}
func (Noop) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (Noop) OnError(context.Context, string, string, string, error)                 {}

var current atomic.Pointer[Hooks]

func init() { Reset() }

// Set replaces the registered hooks. Call it at startup, before any
// pipeline runs.
func Set(h Hooks) {
	if h.Pipeline == nil {
		h.Pipeline = Noop{}
	}
	if h.Cache == nil {
		h.Cache = Noop{}
	}
	if h.HTTP == nil {
		h.HTTP = Noop{}
	}
	current.Store(&h)
}

// Reset restores [Noop] for every family.
func Reset() { Set(Hooks{}) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().Pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().Cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().HTTP }

var (
	_ PipelineHooks = Noop{}
	_ CacheHooks    = Noop{}
	_ HTTPHooks     = Noop{}
)
