package metrics

import (
	"time"

	"potato-racer/internal/track"
)

type TickMetrics struct {
	Tick       int        `json:"tick"`
	Location   track.Cell `json:"location"`
	Step       track.Step `json:"step"`
	Replanned  bool       `json:"replanned"`
	Consumed   int        `json:"consumed"`
	Remaining  int        `json:"remaining"`
	SolverUs   int64      `json:"solver_us"`
	DurationUs int64      `json:"duration_us"`
	Err        string     `json:"err,omitempty"`
}

type SessionMetrics struct {
	SessionID  string        `json:"session_id"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	DurationMs int64         `json:"duration_ms"`
	Ticks      int           `json:"ticks"`
	Replans    int           `json:"replans"`
	NullSteps  int           `json:"null_steps"`
	Errors     int           `json:"errors"`
	SolverUs   int64         `json:"solver_us"`
	SolverMs   int64         `json:"solver_ms"`
	Recent     []TickMetrics `json:"recent,omitempty"`
}

// Keep only the last few ticks around for display.
const maxRecentTicks = 32

// Record folds one tick into the session totals.
func (s *SessionMetrics) Record(tm TickMetrics) {
	s.Ticks++
	if tm.Replanned {
		s.Replans++
	}
	if tm.Err != "" {
		s.Errors++
	} else if tm.Step == track.NullStep {
		s.NullSteps++
	}
	s.SolverUs += tm.SolverUs
	s.Recent = append(s.Recent, tm)
	if len(s.Recent) > maxRecentTicks {
		s.Recent = s.Recent[len(s.Recent)-maxRecentTicks:]
	}
}

// Compute derived fields for a session.
func (s *SessionMetrics) Finalize() {
	s.DurationMs = s.End.Sub(s.Start).Milliseconds()
	s.SolverMs = s.SolverUs / 1000
}
