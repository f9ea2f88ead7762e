package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/McKayRansom/auto-factorio/pkg/errors"
	"github.com/McKayRansom/auto-factorio/pkg/grid"
	"github.com/McKayRansom/auto-factorio/pkg/observability"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
	"github.com/McKayRansom/auto-factorio/pkg/render"
)

// Render produces every requested format for a routed map.
func Render(ctx context.Context, res *problem.Result, m *grid.Map, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	start := time.Now()
	observability.Routing().OnRenderStart(ctx, opts.Formats)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		if data, err = renderFormat(ctx, format, res, m); err != nil {
			break
		}
		artifacts[format] = data
	}

	observability.Routing().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, format string, res *problem.Result, m *grid.Map) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(render.ASCII(m)), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := problem.WriteResult(res, &buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render json")
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(render.ToDOT(m, dotOptions(res))), nil
	case FormatSVG:
		svg, err := render.RenderSVG(ctx, render.ToDOT(m, dotOptions(res)))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		return svg, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}

func dotOptions(res *problem.Result) render.DOTOptions {
	return render.DOTOptions{Title: res.Problem.Name}
}

// RenderWithCacheInfo renders through the cache. Only SVG output is cached;
// the other formats are cheap to regenerate.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *problem.Result, m *grid.Map, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var pending []string
	svgKey := r.Keyer.ArtifactKey(res.ID, FormatSVG)
	for _, format := range opts.Formats {
		if format == FormatSVG && !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, svgKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		pending = append(pending, format)
	}
	if len(pending) == 0 {
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = pending
	rendered, err := Render(ctx, res, m, sub)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if format == FormatSVG {
			if err := r.Cache.Set(ctx, svgKey, data, TTLArtifact); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}
	return artifacts, false, nil
}
