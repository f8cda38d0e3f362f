package metrics

import (
	"testing"
	"time"

	"potato-racer/internal/track"
)

func TestRecord(t *testing.T) {
	var sm SessionMetrics

	sm.Record(TickMetrics{Tick: 1, Replanned: true, Step: track.Step{DRow: 0, DCol: 1}, SolverUs: 2500})
	sm.Record(TickMetrics{Tick: 2, Step: track.Step{DRow: 0, DCol: 1}})
	sm.Record(TickMetrics{Tick: 3, Step: track.NullStep})
	sm.Record(TickMetrics{Tick: 4, Err: "solver failed"})

	if sm.Ticks != 4 {
		t.Errorf("expected 4 ticks, got %d", sm.Ticks)
	}
	if sm.Replans != 1 {
		t.Errorf("expected 1 replan, got %d", sm.Replans)
	}
	if sm.NullSteps != 1 {
		t.Errorf("expected 1 null step (errors excluded), got %d", sm.NullSteps)
	}
	if sm.Errors != 1 {
		t.Errorf("expected 1 error, got %d", sm.Errors)
	}
	if sm.SolverUs != 2500 {
		t.Errorf("expected 2500 us solver time, got %d", sm.SolverUs)
	}
}

func TestFinalize_SumsSubMillisecondSolverTime(t *testing.T) {
	var sm SessionMetrics
	for i := 1; i <= 10; i++ {
		sm.Record(TickMetrics{Tick: i, Replanned: true, SolverUs: 900})
	}
	sm.Finalize()
	if sm.SolverMs != 9 {
		t.Errorf("expected 9 ms solver time, got %d", sm.SolverMs)
	}
}

func TestRecord_TrimsRecent(t *testing.T) {
	var sm SessionMetrics
	for i := 1; i <= maxRecentTicks+10; i++ {
		sm.Record(TickMetrics{Tick: i})
	}
	if len(sm.Recent) != maxRecentTicks {
		t.Fatalf("expected %d recent ticks, got %d", maxRecentTicks, len(sm.Recent))
	}
	if sm.Recent[0].Tick != 11 {
		t.Errorf("expected oldest kept tick to be 11, got %d", sm.Recent[0].Tick)
	}
}

func TestFinalize(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sm := SessionMetrics{Start: start, End: start.Add(1500 * time.Millisecond)}
	sm.Finalize()
	if sm.DurationMs != 1500 {
		t.Errorf("expected 1500 ms, got %d", sm.DurationMs)
	}
}
