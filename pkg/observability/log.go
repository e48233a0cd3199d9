package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event at debug level on a charmbracelet logger.
// It implements all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnFetchStart(_ context.Context, jql string) {
	h.logger.Debug("fetch start", "jql", jql)
}

func (h *LogHooks) OnFetchComplete(_ context.Context, _ string, issueCount int, d time.Duration, err error) {
	h.logger.Debug("fetch complete", "issues", issueCount, "took", d.Round(time.Millisecond), "err", err)
}

func (h *LogHooks) OnBuildStart(_ context.Context, issueCount int) {
	h.logger.Debug("build start", "issues", issueCount)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, edgeCount, skipped int, d time.Duration, err error) {
	h.logger.Debug("build complete", "edges", edgeCount, "skipped", skipped, "took", d.Round(time.Millisecond), "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, failed int, d time.Duration) {
	h.logger.Debug("render complete", "formats", len(formats), "failed", failed, "took", d.Round(time.Millisecond))
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
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
