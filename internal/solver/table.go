package solver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"potato-racer/internal/track"
)

// Route is one precomputed entry of a route table.
type Route struct {
	Target track.Cell   `json:"target" yaml:"target"`
	Path   []track.Cell `json:"path" yaml:"path"`
}

// Table serves precomputed routes keyed by target. The start cell is ignored;
// a target without an entry has no route.
type Table struct {
	routes map[track.Cell][]track.Cell
}

func NewTable(routes []Route) *Table {
	t := &Table{routes: make(map[track.Cell][]track.Cell, len(routes))}
	for _, r := range routes {
		t.routes[r.Target] = r.Path
	}
	return t
}

// LoadTable reads a route table from a YAML or JSON file of the form
// {"routes": [{"target": [r,c], "path": [[r,c], ...]}, ...]}.
func LoadTable(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("route table: no file configured")
	}
	clean := filepath.Clean(path)
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("read route table %s: %w", clean, err)
	}

	var doc struct {
		Routes []Route `json:"routes" yaml:"routes"`
	}
	if strings.EqualFold(filepath.Ext(clean), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse route table %s: %w", clean, err)
	}
	return NewTable(doc.Routes), nil
}

func (t *Table) Factory() Factory {
	return func(l *Layers) (Solver, error) {
		return tableSolver{route: t.routes[l.Target]}, nil
	}
}

type tableSolver struct {
	route []track.Cell
}

func (s tableSolver) Solve(_ context.Context, _ track.Cell) ([]track.Cell, error) {
	out := make([]track.Cell, len(s.route))
	copy(out, s.route)
	return out, nil
}
