// Package sink writes routing results for consumers outside the engine.
//
// [RenderJSON] produces a compact JSON document with one entry per routed
// link: the path string, center, end points, arrowhead angle and the sides
// the link attaches to. [RenderSVG] draws a standalone preview of a scene
// with shape outlines and one <path> element per link, which is handy for
// eyeballing routes while tuning a layout config.
//
// Neither sink computes geometry; both only consume descriptors produced by
// the router package.
package sink
