package coral

import (
	"strconv"

	"coral/internal/config"
)

// Config holds the board dimensions and growth parameters.
type Config struct {
	Rows int
	Cols int

	// HueDiff is the maximum hue change between a parent and its child.
	HueDiff int
	// PBrightness is the average brightness gained over a full column of
	// growth, in units of 100%.
	PBrightness float64
	// DownBias in [0, 1] makes drifters fall faster and corals denser.
	DownBias float64
	// RightBias in [-1, 1] makes drifters lean right (positive) or left.
	RightBias float64

	Seed int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Rows:        250,
		Cols:        600,
		HueDiff:     2,
		PBrightness: 0.8,
		DownBias:    0.3,
		RightBias:   0,
		Seed:        1,
	}
}

// FromPreset applies a preset on top of the defaults.
func FromPreset(p config.Preset) Config {
	c := DefaultConfig()
	c.Rows = p.Rows
	c.Cols = p.Cols
	if p.HueDiff != nil {
		c.HueDiff = *p.HueDiff
	}
	if p.PBrightness != nil {
		c.PBrightness = *p.PBrightness
	}
	if p.DownBias != nil {
		c.DownBias = *p.DownBias
	}
	if p.RightBias != nil {
		c.RightBias = *p.RightBias
	}
	return c
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().Apply(cfg)
}

// Apply overrides fields of c from a string map. Unparseable values are ignored.
func (c Config) Apply(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Cols = parsed
		}
	}
	if v, ok := cfg["hue_diff"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.HueDiff = parsed
		}
	}
	if v, ok := cfg["p_brightness"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.PBrightness = parsed
		}
	}
	if v, ok := cfg["down_bias"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.DownBias = parsed
		}
	}
	if v, ok := cfg["right_bias"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.RightBias = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

// probabilities derived from a Config, clamped to [0, 1].
type rates struct {
	pBrighter float64
	pDown     float64
	pRight    float64
}

func (c Config) rates() rates {
	return rates{
		pBrighter: clamp01(c.PBrightness * 100 / float64(c.Rows)),
		pDown:     clamp01(0.25 + 0.75*c.DownBias),
		pRight:    clamp01(0.5 + c.RightBias/2),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
