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

	r := NoopRoutingHooks{}
	r.OnRouteStart(ctx, "basic", 1)
	r.OnAttempt(ctx, "basic", 0, 9, nil)
	r.OnRouteComplete(ctx, "basic", 9, time.Second, nil)
	r.OnRenderStart(ctx, []string{"svg"})
	r.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "result")
	c.OnCacheMiss(ctx, "result")
	c.OnCacheSet(ctx, "artifact", 1024)

	NoopAPIHooks{}.OnRequest(ctx, "GET", "/healthz", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Routing().(NoopRoutingHooks); !ok {
		t.Error("Routing() should return NoopRoutingHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := API().(NoopAPIHooks); !ok {
		t.Error("API() should return NoopAPIHooks by default")
	}

	customRouting := &testRoutingHooks{}
	SetRoutingHooks(customRouting)
	if Routing() != customRouting {
		t.Error("SetRoutingHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customAPI := &testAPIHooks{}
	SetAPIHooks(customAPI)
	if API() != customAPI {
		t.Error("SetAPIHooks should set custom hooks")
	}

	Reset()
	if _, ok := Routing().(NoopRoutingHooks); !ok {
		t.Error("Reset() should restore NoopRoutingHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testRoutingHooks{}
	SetRoutingHooks(custom)
	SetRoutingHooks(nil)

	if Routing() != custom {
		t.Error("SetRoutingHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnRouteStart(ctx, "madness", 4)
	h.OnAttempt(ctx, "madness", 1, 0, errors.New("blocked"))
	h.OnRouteComplete(ctx, "madness", 69, time.Second, nil)
	h.OnCacheHit(ctx, "result")
	h.OnRequest(ctx, "POST", "/v1/routes", 500, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"route start", "attempt failed", "blocked", "route complete", "cost=69", "cache hit", "WARN", "status=500"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testRoutingHooks struct{ NoopRoutingHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testAPIHooks struct{ NoopAPIHooks }
