package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// all three hook interfaces.
type LogHooks struct {
	Logger *log.Logger
}

// Register installs h for pipeline, cache and HTTP events.
func (h LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h LogHooks) OnFetchStart(_ context.Context, source string) {
	h.Logger.Debug("fetch", "source", source)
}

func (h LogHooks) OnFetchComplete(_ context.Context, source string, rows int, d time.Duration, err error) {
	h.done("fetched", err, "source", source, "rows", rows, "took", d)
}

func (h LogHooks) OnBuildComplete(_ context.Context, nodes, edges, dangling int, d time.Duration, err error) {
	h.done("built graph", err, "nodes", nodes, "edges", edges, "dangling", dangling, "took", d)
}

func (h LogHooks) OnLayoutStart(_ context.Context, nodes int) {
	h.Logger.Debug("layout", "nodes", nodes)
}

func (h LogHooks) OnLayoutComplete(_ context.Context, crossings int, d time.Duration, err error) {
	h.done("laid out", err, "crossings", crossings, "took", d)
}

func (h LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render", "formats", formats)
}

func (h LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("rendered", err, "formats", formats, "took", d)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http", "method", method, "host", host, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "status", status, "took", d)
}

func (h LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("http error", "method", method, "host", host, "err", err)
}

func (h LogHooks) done(msg string, err error, kv ...any) {
	if err != nil {
		h.Logger.Debug(msg+" failed", append(kv, "err", err)...)
		return
	}
	h.Logger.Debug(msg, kv...)
}
