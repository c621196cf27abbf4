package cache

import "strings"

// keyVersion is bumped whenever the builder output for identical inputs
// changes.
const keyVersion = "v1"

// RouteKeyOpts are the pass-wide inputs that change a routed path.
type RouteKeyOpts struct {
	Style     string `json:"style"`
	Direction string `json:"direction"`
	Config    string `json:"config"` // fingerprint of the numeric layout constants
}

// Keyer generates cache keys.
type Keyer interface {
	// RouteKey identifies the path of one link from a hash of its resolved
	// builder inputs.
	RouteKey(linkHash string, opts RouteKeyOpts) string

	// SceneKey identifies the result of a whole pass over a scene.
	SceneKey(sceneHash string, opts RouteKeyOpts) string
}

// DefaultKeyer hashes its inputs under fixed prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RouteKey returns "route:<sha256>".
func (DefaultKeyer) RouteKey(linkHash string, opts RouteKeyOpts) string {
	return hashKey(KindRoute, keyVersion, linkHash, opts)
}

// SceneKey returns "scene:<sha256>".
func (DefaultKeyer) SceneKey(sceneHash string, opts RouteKeyOpts) string {
	return hashKey(KindScene, keyVersion, sceneHash, opts)
}

// Entry kinds reported by KeyKind.
const (
	KindRoute = "route"
	KindScene = "scene"
	KindOther = "other"
)

// KeyKind returns the kind of entry a key names: KindRoute or KindScene for
// keys made by a Keyer, whatever scope prefix they carry, and KindOther for
// anything else.
func KeyKind(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) >= 2 {
		switch k := parts[len(parts)-2]; k {
		case KindRoute, KindScene:
			return k
		}
	}
	return KindOther
}
