package track

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Track is one snapshot of the race track. The agent only ever compares
// Target; the grids are handed to the solver untouched.
type Track struct {
	Name         string  `json:"name,omitempty" yaml:"name,omitempty"`
	Walls        [][]int `json:"walls" yaml:"walls"`
	Active       [][]int `json:"active" yaml:"active"`
	Buttons      [][]int `json:"buttons" yaml:"buttons"`
	WallColors   [][]int `json:"wall_colors" yaml:"wall_colors"`
	ButtonColors [][]int `json:"button_colors" yaml:"button_colors"`
	Target       Cell    `json:"target" yaml:"target"`
}

// WithTarget returns a shallow copy pointing at another target. Grids are shared.
func (t *Track) WithTarget(target Cell) *Track {
	cp := *t
	cp.Target = target
	return &cp
}

// Load reads a track snapshot from a .yaml, .yml or .json file.
func Load(path string) (*Track, error) {
	clean := filepath.Clean(path)
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("read track %s: %w", clean, err)
	}
	t, err := Parse(data, filepath.Ext(clean))
	if err != nil {
		return nil, fmt.Errorf("parse track %s: %w", clean, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(clean), filepath.Ext(clean))
	}
	return t, nil
}

// Parse decodes a snapshot. ext selects the format; anything but ".json" is YAML.
func Parse(data []byte, ext string) (*Track, error) {
	var t Track
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, err
		}
	}
	return &t, nil
}
