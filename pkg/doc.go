// Package pkg provides the libraries behind linkroute, an engine that
// computes the paths of links between positioned diagram shapes.
//
// # Overview
//
// The engine takes shapes that a layout step has already placed, plus the
// links between them, and returns one path descriptor per link: a segment
// list, its path string, a center point for labels and the arrowhead angle.
// The pkg directory is organized into three areas:
//
//  1. Geometry - [geom], [path] and [diagram] describe points, directions,
//     segment paths and the shapes links attach to.
//  2. Routing - [connector] draws one link in a given style; [fanout]
//     spreads and staggers link ends; [router] runs whole passes.
//  3. Infrastructure - [cache], [scene], [sink], [errors], [observability]
//     and [buildinfo].
//
// # Architecture
//
// The data flow of one routing pass:
//
//	scene file / HTTP request
//	         ↓
//	    [scene] package (shapes, links, layout config)
//	         ↓
//	    [router] package (bind ends, place anchors)
//	         ↓
//	    [fanout] package (spread shared sides, stagger elbows)
//	         ↓
//	    [connector] package (skeleton + style → path.Descriptor)
//	         ↓
//	    [sink] package (JSON descriptors, SVG preview)
//
// # Quick Start
//
//	shapes := []diagram.Shape{
//	    {ID: "a", X: 0, Y: 0, Width: 100, Height: 60},
//	    {ID: "b", X: 300, Y: 0, Width: 100, Height: 60},
//	}
//	links := []diagram.Link{{ID: "a-b",
//	    Source: diagram.End{Shape: "a"}, Target: diagram.End{Shape: "b"}}}
//
//	cfg := diagram.DefaultLayoutConfig()
//	cfg.Style = diagram.StyleElbow
//
//	r := router.New(cache.NewMemoryCache(1024), nil, nil)
//	res, _ := r.RouteAll(ctx, shapes, links, router.Options{Config: cfg})
//	fmt.Println(res.Routes[0].PathString)
//	// M 100 30 L 130 30 L 270 30 L 300 30
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/connector/...       # Specific package
//	go test -run Example ./pkg/...    # Examples only
//
// Redis cache tests run only when LINKROUTE_REDIS_ADDR points at a server.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/geom
// [path]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/path
// [diagram]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/diagram
// [connector]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/connector
// [fanout]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/fanout
// [router]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/router
// [cache]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/cache
// [scene]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/scene
// [sink]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/sink
// [errors]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/linkroute/pkg/buildinfo
package pkg
