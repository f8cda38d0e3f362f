package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"potato-racer/internal/logger"
	"potato-racer/internal/solver"
	"potato-racer/internal/track"
)

// Stats are cumulative counters over the lifetime of an Agent.
type Stats struct {
	Moves        int           `json:"moves"`
	Replans      int           `json:"replans"`
	FailedPlans  int           `json:"failed_plans"`
	NullSteps    int           `json:"null_steps"`
	Consumed     int           `json:"consumed"`
	SolverTime   time.Duration `json:"solver_time_ns"`
	LastPlanID   string        `json:"last_plan_id,omitempty"`
	LastPlanSize int           `json:"last_plan_size"`
}

// Outcome describes what a single Move call did besides returning a step.
type Outcome struct {
	Step       track.Step
	Replanned  bool
	Consumed   int
	Remaining  int
	SolverTime time.Duration
}

// Agent caches the route to the current target and turns it into one unit
// step per call. It is meant to live for the whole process and be shared by
// reference with whatever drives the ticks.
type Agent struct {
	mu      sync.Mutex
	factory solver.Factory

	path       []track.Cell
	lastTarget track.Cell
	planned    bool

	stats Stats
}

func New(factory solver.Factory) *Agent {
	return &Agent{factory: factory}
}

// Move returns the step toward the next waypoint of the cached route,
// replanning first if the track's target differs from the cached one.
func (a *Agent) Move(ctx context.Context, loc track.Cell, t *track.Track) (track.Step, error) {
	out, err := a.MoveDetailed(ctx, loc, t)
	return out.Step, err
}

// MoveDetailed is Move plus bookkeeping about the call.
func (a *Agent) MoveDetailed(ctx context.Context, loc track.Cell, t *track.Track) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out Outcome
	a.stats.Moves++

	if !a.planned || t.Target != a.lastTarget {
		elapsed, err := a.replan(ctx, loc, t)
		out.SolverTime = elapsed
		if err != nil {
			a.stats.FailedPlans++
			return out, err
		}
		out.Replanned = true
	}

	for len(a.path) > 0 && a.path[0] == loc {
		a.path = a.path[1:]
		out.Consumed++
	}
	a.stats.Consumed += out.Consumed
	out.Remaining = len(a.path)

	if len(a.path) == 0 {
		a.stats.NullSteps++
		out.Step = track.NullStep
		return out, nil
	}

	// path[0] stays until loc reaches it
	out.Step = track.StepToward(loc, a.path[0])
	return out, nil
}

// replan asks a fresh solver for a route from loc. The cache is only
// replaced once the solver has answered, so a failure leaves it untouched.
func (a *Agent) replan(ctx context.Context, loc track.Cell, t *track.Track) (time.Duration, error) {
	layers, err := solver.Normalize(t)
	if err != nil {
		return 0, fmt.Errorf("normalize track: %w", err)
	}
	s, err := a.factory(layers)
	if err != nil {
		return 0, fmt.Errorf("build solver: %w", err)
	}

	planID := uuid.New().String()[:8]
	begin := time.Now()
	path, err := s.Solve(ctx, loc)
	elapsed := time.Since(begin)
	a.stats.SolverTime += elapsed
	if err != nil {
		logger.Log.Printf("[Agent] plan %s for target %s from %s FAILED: %v", planID, t.Target, loc, err)
		return elapsed, fmt.Errorf("plan route to %s: %w", t.Target, err)
	}

	a.path = path
	a.lastTarget = t.Target
	a.planned = true

	a.stats.Replans++
	a.stats.LastPlanID = planID
	a.stats.LastPlanSize = len(path)
	if len(path) == 0 {
		logger.Log.Printf("[Agent] plan %s: no route to %s from %s", planID, t.Target, loc)
	} else {
		logger.Log.Printf("[Agent] plan %s: %d waypoints to %s from %s (%s)",
			planID, len(path), t.Target, loc, elapsed.Round(time.Microsecond))
	}
	return elapsed, nil
}

// Path returns a copy of the remaining route.
func (a *Agent) Path() []track.Cell {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]track.Cell, len(a.path))
	copy(out, a.path)
	return out
}

// LastTarget reports the target the cached route was planned for.
// ok is false until the first successful plan.
func (a *Agent) LastTarget() (target track.Cell, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastTarget, a.planned
}

func (a *Agent) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}
