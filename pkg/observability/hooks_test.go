package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnFetchStart(ctx, "project = T")
	p.OnFetchComplete(ctx, "project = T", 12, time.Second, nil)
	p.OnBuildStart(ctx, 12)
	p.OnBuildComplete(ctx, 7, 1, time.Second, nil)
	p.OnRenderStart(ctx, []string{"drawio"})
	p.OnRenderComplete(ctx, []string{"drawio"}, 0, time.Second)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "search")
	c.OnCacheMiss(ctx, "fields")
	c.OnCacheSet(ctx, "search", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "acme.atlassian.net", "/rest/api/3/search")
	h.OnResponse(ctx, "GET", "acme.atlassian.net", "/rest/api/3/search", 200, time.Second)
	h.OnError(ctx, "GET", "acme.atlassian.net", "/rest/api/3/search", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	hooks := NewLogHooks(log.New(&bytes.Buffer{}))
	SetPipelineHooks(hooks)
	SetCacheHooks(hooks)
	SetHTTPHooks(hooks)
	if Pipeline() != PipelineHooks(hooks) || Cache() != CacheHooks(hooks) || HTTP() != HTTPHooks(hooks) {
		t.Error("setters should register the custom hooks")
	}

	// nil is ignored
	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(hooks) {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))

	h.OnFetchComplete(ctx, "project = T", 3, 1500*time.Millisecond, nil)
	h.OnCacheHit(ctx, "search")
	h.OnError(ctx, "GET", "acme.atlassian.net", "/rest/api/3/field", errors.New("reset by peer"))

	out := buf.String()
	for _, want := range []string{"fetch complete", "issues=3", "cache hit", "type=search", "http error", "reset by peer"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnRequest(context.Background(), "GET", "acme.atlassian.net", "/rest/api/3/search")
	if buf.Len() != 0 {
		t.Errorf("debug events should be filtered at info level, got %q", buf.String())
	}
}
