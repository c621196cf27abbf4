// Package cache stores routed paths so repeated layout passes can skip the
// builder.
//
// Routing is a pure function of its inputs, so a cached descriptor is valid
// for as long as its key is. Keys are produced by a [Keyer] from a hash of
// every input that reaches the builder: anchors, directions, boxes, stubs,
// style and layout constants. Any coordinate or style change therefore lands
// on a different key and stale entries are never read.
//
// # Backends
//
//   - [NullCache] stores nothing; the default when caching is off.
//   - [MemoryCache] keeps entries in process, the default of the HTTP server.
//   - [FileCache] keeps one JSON file per entry, used by the CLI.
//   - [RedisCache] shares entries between processes.
//
// Backends that can drop every entry at once also implement [Clearer];
// those that can count their entries by [KeyKind] implement [Counter].
//
// A [ScopedKeyer] prefixes keys so several canvases or tenants can share one
// backend without reading each other's scene entries.
package cache
