// Package router is the routing facade: it turns shapes and links into path
// descriptors in one pass.
//
// A pass works on copies of its inputs and runs these stages:
//
//  1. Bind: validate each link, look up its shapes and ports. Links with an
//     end that resolves to neither a shape nor a position, or that name an
//     unknown shape, are rejected with INCOMPLETE_LINK and left out of the
//     pass; the rest still route.
//  2. Place: resolve anchors and directions. Ports give both directly.
//     Portless ends of straight and association links meet the outline on
//     the ray toward the other end; other portless ends take the middle of
//     the side facing the other end. Free ends face along the dominant axis
//     between the two ends.
//  3. Fan out: ends sharing a side without a port of their own are spread
//     along it (see package fanout).
//  4. Stagger: elbow links leaving a node with several output ports get
//     increasing initial stubs.
//  5. Build: each link is drawn by package connector, through the cache
//     when one is configured.
//
// # Caching
//
// Routing is deterministic, so the [Router] memoizes both whole passes and
// single links through a [cache.Cache]. Keys hash every input of the step
// they cover, so any change in coordinates, style or configuration misses.
//
// # Example
//
//	r := router.New(nil, nil, logger)
//	res, err := r.RouteAll(ctx, shapes, links, router.Options{
//	    Config: diagram.DefaultLayoutConfig(),
//	})
//	for _, route := range res.Routes {
//	    fmt.Println(route.Link, route.PathString)
//	}
package router
