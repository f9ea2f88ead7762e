package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/McKayRansom/auto-factorio/pkg/errors"
	"github.com/McKayRansom/auto-factorio/pkg/pipeline"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
	"github.com/McKayRansom/auto-factorio/pkg/store"
)

var contentTypes = map[string]string{
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
}

func (s *Server) createRoute(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r, s.cfg.MaxBody)
	if err != nil {
		s.writeError(w, err)
		return
	}
	p, err := pipeline.Load(body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if cells := p.Width * p.Height; cells > s.cfg.MaxCells {
		s.writeError(w, errors.New(errors.ErrCodeInvalidProblem,
			"map has %d cells, limit is %d", cells, s.cfg.MaxCells))
		return
	}
	opts, err := routeOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()
	res, _, _, hit, err := s.runner.RouteWithCacheInfo(ctx, p, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Put(ctx, res); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store result"))
		return
	}

	s.logger.Info("routed problem", "id", res.ID, "problem", p.Name, "cost", res.Cost, "solved", res.Solved, "cached", hit)
	w.Header().Set("Location", "/v1/routes/"+res.ID)
	writeJSON(w, http.StatusCreated, res)
}

func routeOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Ordering: q.Get("ordering")}

	var err error
	if opts.Attempts, err = queryInt(r, "attempts"); err != nil {
		return opts, err
	}
	if opts.MaxTunnel, err = queryInt(r, "max_tunnel"); err != nil {
		return opts, err
	}
	if v := q.Get("seed"); v != "" {
		if opts.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter seed")
		}
	}
	if v := q.Get("refresh"); v != "" {
		if opts.Refresh, err = strconv.ParseBool(v); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter refresh")
		}
	}
	return opts, nil
}

func (s *Server) listRoutes(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, err)
		return
	}
	results, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list results"))
		return
	}
	type summary struct {
		ID      string `json:"id"`
		Problem string `json:"problem"`
		Cost    int    `json:"cost"`
		Solved  bool   `json:"solved"`
	}
	out := make([]summary, 0, len(results))
	for _, res := range results {
		out = append(out, summary{ID: res.ID, Problem: res.Problem.Name, Cost: res.Cost, Solved: res.Solved})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getRoute(w http.ResponseWriter, r *http.Request) {
	res, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == pipeline.FormatJSON {
		writeJSON(w, http.StatusOK, res)
		return
	}
	opts := pipeline.Options{Formats: []string{format}}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, err)
		return
	}
	m, _, err := res.Map()
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "rebuild map"))
		return
	}
	artifacts, _, err := s.runner.RenderWithCacheInfo(r.Context(), res, m, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeBytes(w, contentTypes[opts.Formats[0]], artifacts[opts.Formats[0]])
}

func (s *Server) deleteRoute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateJobID(id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete result"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(r *http.Request) (*problem.Result, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateJobID(id); err != nil {
		return nil, err
	}
	res, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		return nil, errors.New(errors.ErrCodeNotFound, "no result with id %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load result %s", id)
	}
	return res, nil
}
