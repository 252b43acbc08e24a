package colortree

import (
	"fmt"
	"math"
)

// DefaultTolerance is the squared color distance under which two candidate
// regions are considered equally good.
const DefaultTolerance = 1e-9

// Config configures a color tree. All nodes of a tree share one Config.
type Config struct {
	// Global is the average color over the full palette. It is blended into
	// the color estimate of regions with free entries.
	Global Color
	// Tolerance is the squared color distance within which candidates count
	// as tied. Ties are broken by the random source. Zero selects
	// DefaultTolerance.
	Tolerance float64
}

func (cfg Config) normalized() Config {
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	for _, ch := range [...]float64{cfg.Global.R, cfg.Global.G, cfg.Global.B} {
		if math.IsNaN(ch) || ch < 0 || ch > 255 {
			return fmt.Errorf("%w: global average %s out of range", ErrInvalidConfig, cfg.Global)
		}
	}
	if cfg.Tolerance < 0 || math.IsNaN(cfg.Tolerance) {
		return fmt.Errorf("%w: negative tolerance", ErrInvalidConfig)
	}
	return nil
}

// Prepare validates a configuration and returns its normalized form, ready
// to be shared by the nodes of a tree.
func Prepare(cfg Config) (*Config, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	return &cfg, nil
}
