package cache

// ScopedKeyer wraps a Keyer with a prefix so several diagrams or tenants
// can share one backend without sharing entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "canvas:4f1c:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RouteKey generates a prefixed key for one routed link.
func (k *ScopedKeyer) RouteKey(linkHash string, opts RouteKeyOpts) string {
	return k.prefix + k.inner.RouteKey(linkHash, opts)
}

// SceneKey generates a prefixed key for a whole routing pass.
func (k *ScopedKeyer) SceneKey(sceneHash string, opts RouteKeyOpts) string {
	return k.prefix + k.inner.SceneKey(sceneHash, opts)
}
