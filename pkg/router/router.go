package router

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkroute/pkg/cache"
	"github.com/matzehuels/linkroute/pkg/connector"
	"github.com/matzehuels/linkroute/pkg/diagram"
	errs "github.com/matzehuels/linkroute/pkg/errors"
	"github.com/matzehuels/linkroute/pkg/observability"
	"github.com/matzehuels/linkroute/pkg/path"
)

// Router routes links with caching. Both the CLI and the HTTP server use it.
//
// The Router is stateless except for the cache and logger; every pass works
// on its own copies of the inputs. Multiple goroutines can safely use the
// same Router as long as the cache is safe for concurrent use.
type Router struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// New creates a router with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func New(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Router {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Router{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// sceneInput is hashed for whole-pass cache keys.
type sceneInput struct {
	Shapes []diagram.Shape `json:"shapes"`
	Links  []diagram.Link  `json:"links"`
}

// linkInput is hashed for single-link cache keys.
type linkInput struct {
	Request connector.Request `json:"request"`
	Style   diagram.Style     `json:"style"`
	Options connector.Options `json:"options"`
}

// RouteAll routes every link in one pass. Invalid shapes and configuration
// fail the whole pass; individual bad links are reported in
// Result.Rejected and the others are still routed.
func (r *Router) RouteAll(ctx context.Context, shapes []diagram.Shape, links []diagram.Link, opts Options) (*Result, error) {
	start := time.Now()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Route()
	hooks.OnPassStart(ctx, len(links))

	caching := cache.Enabled(r.Cache)
	keyOpts := opts.keyOpts()
	var sceneKey string
	if caching {
		sceneKey = r.Keyer.SceneKey(cache.HashJSON(sceneInput{shapes, links}), keyOpts)
	}
	if caching && !opts.Refresh {
		if res, ok := r.cachedScene(ctx, sceneKey); ok {
			res.Stats.SceneHit = true
			res.Stats.CacheHits = res.Stats.Routed
			res.Stats.Duration = time.Since(start)
			r.Logger.Info("routed links from cache",
				"links", res.Stats.Links,
				"duration", res.Stats.Duration)
			hooks.OnPassComplete(ctx, passStats(res.Stats), nil)
			return res, nil
		}
	}

	p, err := newPass(shapes, opts.Config)
	if err != nil {
		hooks.OnPassComplete(ctx, observability.PassStats{Links: len(links)}, err)
		return nil, err
	}

	res := &Result{Routes: make([]Route, 0, len(links))}
	res.Stats.Links = len(links)

	ws := make([]*work, 0, len(links))
	for _, l := range links {
		w, err := p.prepare(l)
		if err != nil {
			r.reject(ctx, res, l.ID, err)
			continue
		}
		ws = append(ws, w)
	}

	for _, w := range ws {
		p.place(w)
	}
	if opts.Config.FanOut {
		p.fanOut(ws)
	}
	if opts.Config.StaggerElbows {
		p.stagger(ws)
	}

	copts := connector.OptionsFrom(&opts.Config)
	warned := make(map[diagram.Style]bool)
	for _, w := range ws {
		if err := ctx.Err(); err != nil {
			hooks.OnPassComplete(ctx, passStats(res.Stats), err)
			return nil, err
		}
		if !w.style.Known() {
			res.Stats.Fallbacks++
			if !warned[w.style] {
				warned[w.style] = true
				r.Logger.Warn("unknown link style, drawing straight", "style", w.style)
				hooks.OnStyleFallback(ctx, string(w.style))
			}
		}

		in := linkInput{Request: p.request(w), Style: w.style, Options: copts}
		var d path.Descriptor
		if caching {
			var hit bool
			if d, hit = r.build(ctx, in, keyOpts, opts.Refresh); hit {
				res.Stats.CacheHits++
			}
		} else {
			d = connector.Build(in.Request, in.Style, in.Options)
		}
		res.Routes = append(res.Routes, Route{
			Link:       w.link.ID,
			Descriptor: d,
			Style:      w.style,
			SourceSide: w.src.info,
			TargetSide: w.trg.info,
		})
	}

	res.Stats.Routed = len(res.Routes)
	res.Stats.Rejected = len(res.Rejected)
	res.Stats.Duration = time.Since(start)

	if caching {
		if data, err := json.Marshal(res); err == nil {
			r.store(ctx, sceneKey, cache.KindScene, data, cache.TTLScene)
		}
	}

	r.Logger.Info("routed links",
		"links", res.Stats.Links,
		"rejected", res.Stats.Rejected,
		"cache_hits", res.Stats.CacheHits,
		"duration", res.Stats.Duration)
	hooks.OnPassComplete(ctx, passStats(res.Stats), nil)
	return res, nil
}

// Route routes a single link against the given shapes. A rejected link is
// returned as a *errors.LinkError.
func (r *Router) Route(ctx context.Context, shapes []diagram.Shape, link diagram.Link, opts Options) (path.Descriptor, error) {
	res, err := r.RouteAll(ctx, shapes, []diagram.Link{link}, opts)
	if err != nil {
		return path.Descriptor{}, err
	}
	if len(res.Rejected) > 0 {
		return path.Descriptor{}, res.Rejected[0].Err()
	}
	return res.Routes[0].Descriptor, nil
}

func (r *Router) reject(ctx context.Context, res *Result, linkID string, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeIncompleteLink
	}
	res.Rejected = append(res.Rejected, Rejection{Link: linkID, Code: code, Reason: errs.UserMessage(err)})
	r.Logger.Warn("skipping link", "link", linkID, "code", code, "reason", errs.UserMessage(err))
	observability.Route().OnIncompleteLink(ctx, linkID)
}

// build returns the descriptor for one link, from the cache when possible.
func (r *Router) build(ctx context.Context, in linkInput, keyOpts cache.RouteKeyOpts, refresh bool) (path.Descriptor, bool) {
	key := r.Keyer.RouteKey(cache.HashJSON(in), keyOpts)
	if !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("route cache read failed", "error", err)
		case hit:
			var d path.Descriptor
			err := json.Unmarshal(data, &d)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KindRoute)
				return d, true
			}
			r.discard(ctx, key, err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, cache.KindRoute)

	d := connector.Build(in.Request, in.Style, in.Options)
	if data, err := json.Marshal(d); err == nil {
		r.store(ctx, key, cache.KindRoute, data, cache.TTLRoute)
	}
	return d, false
}

func (r *Router) cachedScene(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("scene cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cache.KindScene)
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		r.discard(ctx, key, err)
		observability.Cache().OnCacheMiss(ctx, cache.KindScene)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cache.KindScene)
	return &res, true
}

// discard drops an entry that no longer decodes. The pass carries on and
// writes a fresh entry in its place.
func (r *Router) discard(ctx context.Context, key string, cause error) {
	err := fmt.Errorf("%w: %v", cache.ErrCorrupt, cause)
	r.Logger.Warn("discarding cache entry", "kind", cache.KeyKind(key), "error", err)
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.Logger.Debug("cache delete failed", "kind", cache.KeyKind(key), "error", err)
	}
}

func (r *Router) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func passStats(s Stats) observability.PassStats {
	return observability.PassStats{
		Links:     s.Links,
		Rejected:  s.Rejected,
		CacheHits: s.CacheHits,
		Duration:  s.Duration,
	}
}
