// Package scene reads and writes scene files and layout configuration.
//
// A scene is the input of a routing pass: positioned shapes and the links
// between them. Scene files are JSON:
//
//	{
//	  "shapes": [
//	    {"id": "a", "x": 0, "y": 0, "width": 100, "height": 60},
//	    {"id": "b", "x": 300, "y": 0, "width": 100, "height": 60,
//	     "ports": [{"id": "in", "kind": "in", "cx": 0, "cy": 30, "dir": "w"}]}
//	  ],
//	  "links": [
//	    {"id": "a-b", "source": {"shape": "a"}, "target": {"shape": "b", "port": "in"}},
//	    {"id": "loose", "source": {"shape": "a"}, "target": {"pos": {"x": 500, "y": 200}}}
//	  ]
//	}
//
// Layout configuration lives in TOML files loaded with [LoadConfig]. Keys
// that are absent keep the values of [diagram.DefaultLayoutConfig]:
//
//	style = "elbow"
//	direction = "left-right"
//	min_initial_stub = 24
//	fan_out = true
//
// [Normalize] assigns ids to shapes and links that arrive without one, so
// hand-written scenes need not name every link. The ids are derived from the
// scene itself, so routing the same file twice gives the same result.
package scene
