package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level. Failures are
// reported at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Install registers h for pipeline, cache and HTTP events.
func (h *LogHooks) Install() {
	Set(Hooks{Pipeline: h, Cache: h, HTTP: h})
}

func (h *LogHooks) OnFetchStart(_ context.Context, dataset string) {
	h.logger.Debug("fetch started", "dataset", dataset)
}

func (h *LogHooks) OnFetchComplete(_ context.Context, dataset string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("fetch failed", "dataset", dataset, "duration", d, "err", err)
		return
	}
	h.logger.Debug("fetch finished", "dataset", dataset, "bytes", size, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, chart string, size int) {
	h.logger.Debug("layout started", "chart", chart, "bytes", size)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, chart string, primitives int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "chart", chart, "err", err)
		return
	}
	h.logger.Debug("layout finished", "chart", chart, "primitives", primitives, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render finished", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
