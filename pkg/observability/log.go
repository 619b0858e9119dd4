package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline, cache and HTTP events to a logger at debug
// level. Failures are logged as warnings.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnLoadStart(_ context.Context, format, source string) {
	h.Logger.Debug("load started", "format", format, "source", source)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, format, source string, n int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("load failed", "format", format, "source", source, "error", err)
		return
	}
	h.Logger.Debug("load complete", "format", format, "series", n, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, orientation string, n int) {
	h.Logger.Debug("layout started", "orientation", orientation, "items", n)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, orientation string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("layout failed", "orientation", orientation, "error", err)
		return
	}
	h.Logger.Debug("layout complete", "orientation", orientation, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.Logger.Debug("render complete", "formats", formats, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, id, method, path string) {
	h.Logger.Debug("request", "id", id, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, id, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "id", id, "method", method, "path", path, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, id, method, path string, err error) {
	h.Logger.Warn("request failed", "id", id, "method", method, "path", path, "error", err)
}
