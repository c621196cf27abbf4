// Package server exposes the routing engine over HTTP.
//
// # Endpoints
//
//   - GET /healthz returns build information.
//   - POST /v1/routes routes a scene and returns the result as JSON, or as
//     an SVG preview with ?format=svg. Other formats are rejected.
//
// The request body carries the scene and an optional partial layout config
// merged over the server defaults:
//
//	{
//	  "scene": {"shapes": [...], "links": [...]},
//	  "config": {"style": "elbow"},
//	  "refresh": false,
//	  "scope": "canvas-1"
//	}
//
// A scope keeps the request's cache entries apart from every other scope.
//
// Every response carries an X-Request-Id header; a client-supplied id is
// echoed back, otherwise a random one is generated.
package server
