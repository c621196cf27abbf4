package scene

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/linkroute/pkg/diagram"
	errs "github.com/matzehuels/linkroute/pkg/errors"
)

// LoadConfig reads a TOML layout configuration from path. Missing keys keep
// their default values; unknown keys and invalid values are errors.
func LoadConfig(path string) (diagram.LayoutConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return diagram.LayoutConfig{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s not found", path)
		}
		return diagram.LayoutConfig{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig reads a TOML layout configuration from r on top of
// [diagram.DefaultLayoutConfig].
func DecodeConfig(r io.Reader) (diagram.LayoutConfig, error) {
	cfg := diagram.DefaultLayoutConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return diagram.LayoutConfig{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode layout config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return diagram.LayoutConfig{}, errs.New(errs.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return diagram.LayoutConfig{}, err
	}
	cfg.Direction, _ = diagram.ParseLinkDirection(string(cfg.Direction))
	return cfg, nil
}

// EncodeConfig writes cfg as TOML.
func EncodeConfig(cfg diagram.LayoutConfig, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode layout config")
	}
	return nil
}
