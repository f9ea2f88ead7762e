package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a charmbracelet logger at debug level.
// Failed routes and server errors are logged as warnings.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

func (h *LogHooks) OnRouteStart(_ context.Context, problem string, nets int) {
	h.logger.Debug("route start", "problem", problem, "nets", nets)
}

func (h *LogHooks) OnAttempt(_ context.Context, problem string, attempt, cost int, err error) {
	if err != nil {
		h.logger.Debug("attempt failed", "problem", problem, "attempt", attempt, "err", err)
		return
	}
	h.logger.Debug("attempt", "problem", problem, "attempt", attempt, "cost", cost)
}

func (h *LogHooks) OnRouteComplete(_ context.Context, problem string, cost int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("route failed", "problem", problem, "elapsed", d, "err", err)
		return
	}
	h.logger.Debug("route complete", "problem", problem, "cost", cost, "elapsed", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render complete", "formats", formats, "elapsed", d, "err", err)
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

func (h *LogHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Warn("request", "method", method, "route", route, "status", status, "elapsed", d)
		return
	}
	h.logger.Info("request", "method", method, "route", route, "status", status, "elapsed", d)
}

var (
	_ RoutingHooks = (*LogHooks)(nil)
	_ CacheHooks   = (*LogHooks)(nil)
	_ APIHooks     = (*LogHooks)(nil)
)
