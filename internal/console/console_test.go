package console

import (
	"context"
	"errors"
	"strings"
	"testing"

	"potato-racer/internal/agent"
	"potato-racer/internal/solver"
	"potato-racer/internal/track"
)

func newTestConsole() *Console {
	table := solver.NewTable([]solver.Route{
		{Target: track.Cell{Row: 0, Col: 2}, Path: []track.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}},
		{Target: track.Cell{Row: 3, Col: 3}, Path: []track.Cell{{Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 3}}},
	})
	return New(agent.New(table.Factory()), &track.Track{Name: "demo", Target: track.Cell{Row: 0, Col: 2}})
}

func TestExec(t *testing.T) {
	c := newTestConsole()
	ctx := context.Background()

	testCases := []struct {
		name        string
		line        string
		contains    string
		expectError bool
	}{
		{name: "Empty line", line: "   ", contains: ""},
		{name: "Help", line: "help", contains: "target <row> <col>"},
		{name: "Path before planning", line: "path", contains: "No route planned yet."},
		{name: "First step replans", line: "0 0", contains: "tick 1: (0,0) -> (0,1) E  [replanned, 2 waypoint(s) left]"},
		{name: "Second step reuses the route", line: "0,1", contains: "tick 2: (0,1) -> (0,1) E"},
		{name: "Path after planning", line: "path", contains: "(0,2)"},
		{name: "Move the target", line: "target 3 3", contains: "Target is now (3,3)."},
		{name: "Step after target change", line: "0 0", contains: "(1,1) SE  [replanned"},
		{name: "Stats", line: "stats", contains: "replans=2"},
		{name: "Bad target", line: "target x", expectError: true},
		{name: "Unknown command", line: "fly away", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := c.Exec(ctx, tc.line)
			if tc.expectError {
				if err == nil {
					t.Error("Expected an error, but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Did not expect an error, but got: %v", err)
			}
			if !strings.Contains(out, tc.contains) {
				t.Errorf("output %q does not contain %q", out, tc.contains)
			}
		})
	}
}

func TestExec_Exit(t *testing.T) {
	c := newTestConsole()
	for _, line := range []string{"exit", "QUIT"} {
		if _, err := c.Exec(context.Background(), line); !errors.Is(err, errExit) {
			t.Errorf("%q: expected errExit, got %v", line, err)
		}
	}
}

func TestExec_TargetChangeKeepsOriginalTrack(t *testing.T) {
	c := newTestConsole()
	original := c.track
	if _, err := c.Exec(context.Background(), "target 3 3"); err != nil {
		t.Fatal(err)
	}
	if original.Target != (track.Cell{Row: 0, Col: 2}) {
		t.Errorf("the loaded snapshot was mutated: %v", original.Target)
	}
}
