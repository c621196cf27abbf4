package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matzehuels/linkroute/pkg/buildinfo"
	"github.com/matzehuels/linkroute/pkg/cache"
	"github.com/matzehuels/linkroute/pkg/diagram"
	errs "github.com/matzehuels/linkroute/pkg/errors"
	"github.com/matzehuels/linkroute/pkg/observability"
	"github.com/matzehuels/linkroute/pkg/router"
	"github.com/matzehuels/linkroute/pkg/scene"
	"github.com/matzehuels/linkroute/pkg/sink"
)

// RoutesRequest is the body of POST /v1/routes.
type RoutesRequest struct {
	Scene   scene.Scene     `json:"scene"`
	Config  json.RawMessage `json:"config,omitempty"`
	Refresh bool            `json:"refresh,omitempty"`
	// Scope keeps this request's cache entries apart from other scopes.
	Scope string `json:"scope,omitempty"`
}

type errorResponse struct {
	Error     string    `json:"error"`
	Code      errs.Code `json:"code,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format := r.URL.Query().Get("format")
	switch format {
	case "", "json", "svg":
	default:
		s.fail(w, r, errs.New(errs.ErrCodeUnsupported, "unknown format %q (want json or svg)", format))
		return
	}

	var req RoutesRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.fail(w, r, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	cfg, err := s.config(req.Config)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rt, err := s.scoped(req.Scope)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	scene.Normalize(&req.Scene)

	res, err := rt.RouteAll(ctx, req.Scene.Shapes, req.Scene.Links, router.Options{Config: cfg, Refresh: req.Refresh})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if format == "svg" {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(sink.RenderSVG(req.Scene.Shapes, res, sink.WithArrows(), sink.WithLabels()))
		return
	}

	var opts []sink.JSONOption
	if r.URL.Query().Get("segments") != "" {
		opts = append(opts, sink.WithJSONSegments())
	}
	data, err := sink.RenderJSON(res, opts...)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// scoped returns a router whose cache keys carry the request scope.
func (s *Server) scoped(scope string) (*router.Router, error) {
	if scope == "" {
		return s.router, nil
	}
	if err := errs.ValidateID("scope", scope); err != nil {
		return nil, err
	}
	return &router.Router{
		Cache:  s.router.Cache,
		Keyer:  cache.NewScopedKeyer(s.router.Keyer, "scope:"+scope+":"),
		Logger: s.router.Logger,
	}, nil
}

// config merges a partial JSON config over the server defaults.
func (s *Server) config(raw json.RawMessage) (diagram.LayoutConfig, error) {
	cfg := s.opts.Defaults
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return diagram.LayoutConfig{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode config")
		}
	}
	if err := cfg.Validate(); err != nil {
		return diagram.LayoutConfig{}, err
	}
	cfg.Direction, _ = diagram.ParseLinkDirection(string(cfg.Direction))
	return cfg, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	ctx := r.Context()
	observability.HTTP().OnError(ctx, r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(ctx), "error", err)
	} else {
		s.logger.Debug("request rejected", "id", RequestID(ctx), "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errs.UserMessage(err),
		Code:      errs.GetCode(err),
		RequestID: RequestID(ctx),
	})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidShape, errs.ErrCodeInvalidConfig,
		errs.ErrCodeInvalidScene, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidStyle,
		errs.ErrCodeInvalidID, errs.ErrCodeIncompleteLink, errs.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeShapeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
