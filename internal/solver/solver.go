package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"potato-racer/internal/config"
	"potato-racer/internal/track"
)

var ErrSolverFailed = errors.New("solver failed")

// Solver computes a route from start to the target it was built for.
// "No route" is an empty result, not an error.
type Solver interface {
	Solve(ctx context.Context, start track.Cell) ([]track.Cell, error)
}

// Factory builds a Solver for one planning request.
type Factory func(l *Layers) (Solver, error)

// NewFactory selects the backend named in the configuration.
func NewFactory(cfg *config.Config) (Factory, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.SolverBackend))
	switch backend {
	case "", config.BackendExec:
		return NewExecFactory(cfg.SolverCommand, cfg.SolverTimeout)
	case config.BackendTable:
		table, err := LoadTable(cfg.RouteTable)
		if err != nil {
			return nil, err
		}
		return table.Factory(), nil
	default:
		return nil, fmt.Errorf("unsupported solver backend: %s", cfg.SolverBackend)
	}
}
