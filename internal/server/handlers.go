package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matzehuels/stackviz/pkg/buildinfo"
	"github.com/matzehuels/stackviz/pkg/dataset"
	errs "github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/graph"
	"github.com/matzehuels/stackviz/pkg/pipeline"
)

// HeaderCache reports whether a response was served from the cache.
const HeaderCache = "X-Cache"

// chartRequest is the body of /v1/layout and /v1/render.
type chartRequest struct {
	Dataset *dataset.Dataset `json:"dataset"`
	Options pipeline.Options `json:"options"`
}

// neighborsRequest is the body of /v1/neighbors. An empty format returns
// the neighbor IDs as JSON.
type neighborsRequest struct {
	Graph json.RawMessage `json:"graph"`
	pipeline.NeighborOptions
}

type neighborsResponse struct {
	Pivot     string   `json:"pivot"`
	Neighbors []string `json:"neighbors"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatPDF:      "application/pdf",
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatText:     "text/plain; charset=utf-8",
	pipeline.FormatGraphviz: "image/svg+xml",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeChart(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Options.Logger = s.logger

	frame, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), req.Dataset, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, frame)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := decodeChart(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.Options
	opts.Logger = s.logger
	opts.Formats = []string{format}

	ctx := r.Context()
	frame, layoutHit, err := s.runner.ComputeLayoutWithCacheInfo(ctx, req.Dataset, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, renderHit, err := s.runner.RenderWithCacheInfo(ctx, frame, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, layoutHit && renderHit)
	writeArtifact(w, format, artifacts[format])
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	var req neighborsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Graph) == 0 {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "graph is required"))
		return
	}
	g, err := graph.ReadJSON(bytes.NewReader(req.Graph))
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid graph"))
		return
	}

	opts := req.NeighborOptions
	listOnly := opts.Format == ""
	if listOnly {
		opts.Format = pipeline.FormatText
	}
	data, hit, err := s.runner.NeighborhoodWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, hit)

	if listOnly {
		ids := []string{}
		for line := range strings.SplitSeq(strings.TrimSpace(string(data)), "\n") {
			if line != "" {
				ids = append(ids, line)
			}
		}
		writeJSON(w, http.StatusOK, neighborsResponse{Pivot: opts.Pivot, Neighbors: ids})
		return
	}
	writeArtifact(w, opts.Format, data)
}

func decodeChart(w http.ResponseWriter, r *http.Request) (*chartRequest, error) {
	var req chartRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nil, err
	}
	if req.Dataset == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "dataset is required")
	}
	if err := req.Dataset.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}
}

func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
