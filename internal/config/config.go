// Package config loads named coral presets from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/presets.yaml
var defaultPresetsYAML []byte

// ErrUnknownPreset is returned when a preset name is not defined.
var ErrUnknownPreset = errors.New("config: unknown preset")

// Preset is a named board configuration. Pointer fields are optional and
// fall back to the board defaults when nil.
type Preset struct {
	Name        string `yaml:"name"`
	Group       string `yaml:"group"`
	Description string `yaml:"description"`

	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	HueDiff     *int     `yaml:"hue_diff,omitempty"`
	PBrightness *float64 `yaml:"p_brightness,omitempty"`
	DownBias    *float64 `yaml:"down_bias,omitempty"`
	RightBias   *float64 `yaml:"right_bias,omitempty"`
}

// Presets is the on-disk preset file layout.
type Presets struct {
	Presets []Preset `yaml:"presets"`
}

// Find returns the preset with the given name.
func (p Presets) Find(name string) (Preset, error) {
	for _, preset := range p.Presets {
		if preset.Name == name {
			return preset, nil
		}
	}
	return Preset{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
}

// Group returns the presets in the named group, in file order.
func (p Presets) Group(group string) []Preset {
	var out []Preset
	for _, preset := range p.Presets {
		if preset.Group == group {
			out = append(out, preset)
		}
	}
	return out
}

// Names lists preset names in sorted order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p.Presets))
	for _, preset := range p.Presets {
		names = append(names, preset.Name)
	}
	sort.Strings(names)
	return names
}

// Validate checks names are present and unique and dimensions are positive.
func (p Presets) Validate() error {
	seen := make(map[string]bool, len(p.Presets))
	for i, preset := range p.Presets {
		if preset.Name == "" {
			return fmt.Errorf("config: preset %d has no name", i)
		}
		if seen[preset.Name] {
			return fmt.Errorf("config: duplicate preset %q", preset.Name)
		}
		seen[preset.Name] = true
		if preset.Rows <= 0 || preset.Cols <= 0 {
			return fmt.Errorf("config: preset %q has invalid size %dx%d", preset.Name, preset.Rows, preset.Cols)
		}
		if preset.HueDiff != nil && *preset.HueDiff < 0 {
			return fmt.Errorf("config: preset %q has negative hue_diff", preset.Name)
		}
	}
	return nil
}

// Builtin returns the embedded presets.
func Builtin() Presets {
	p, err := parse(defaultPresetsYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded presets are invalid: %v", err))
	}
	return p
}

// Load reads presets.
// Search order: customPath -> ~/.coral/presets.yaml -> ./configs/presets.yaml -> embedded default
func Load(customPath string) (Presets, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Presets{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		p, err := parse(data)
		if err != nil {
			return Presets{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return p, nil
	}

	if userPath := userConfigPath("presets.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if p, err := parse(data); err == nil {
				return p, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "presets.yaml")); err == nil {
		if p, err := parse(data); err == nil {
			return p, nil
		}
	}

	return Builtin(), nil
}

func parse(data []byte) (Presets, error) {
	var p Presets
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Presets{}, err
	}
	if err := p.Validate(); err != nil {
		return Presets{}, err
	}
	return p, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".coral", filename)
}
