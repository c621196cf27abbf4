package router

import (
	"github.com/matzehuels/linkroute/pkg/cache"
	"github.com/matzehuels/linkroute/pkg/diagram"
)

// Options configures a single pass.
type Options struct {
	Config diagram.LayoutConfig

	// Refresh skips cache reads; results are still written.
	Refresh bool
}

// ValidateAndSetDefaults fills unset config fields with the defaults and
// validates the result. See diagram.LayoutConfig.SetDefaults.
func (o *Options) ValidateAndSetDefaults() error {
	o.Config.SetDefaults()
	return o.Config.Validate()
}

// keyOpts returns the cache key options for the pass.
func (o *Options) keyOpts() cache.RouteKeyOpts {
	return cache.RouteKeyOpts{
		Style:     string(o.Config.Style),
		Direction: string(o.Config.Direction),
		Config:    cache.Hash([]byte(o.Config.Fingerprint())),
	}
}
