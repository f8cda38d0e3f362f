package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"

	"potato-racer/internal/logger"
	"potato-racer/internal/track"
)

// request is what an external solver reads from stdin. Grids are row-major.
type request struct {
	Rows         int        `json:"rows"`
	Cols         int        `json:"cols"`
	Walls        []int      `json:"walls"`
	Active       []int      `json:"active"`
	Buttons      []int      `json:"buttons"`
	WallColors   []int32    `json:"wall_colors"`
	ButtonColors []int32    `json:"button_colors"`
	Target       track.Cell `json:"target"`
	Start        track.Cell `json:"start"`
}

// How long Solve waits for the solver's output pipes after killing it.
const killWaitDelay = 500 * time.Millisecond

// Exec runs an external solver process once per Solve call.
type Exec struct {
	argv    []string
	timeout time.Duration
	layers  *Layers
}

// NewExecFactory parses a shell-style command line once and returns a
// factory producing Exec solvers bound to it. timeout <= 0 means no limit.
func NewExecFactory(command string, timeout time.Duration) (Factory, error) {
	if strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("exec solver: empty command")
	}
	argv, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("exec solver: bad command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("exec solver: empty command")
	}
	return func(l *Layers) (Solver, error) {
		return &Exec{argv: argv, timeout: timeout, layers: l}, nil
	}, nil
}

func (e *Exec) Solve(ctx context.Context, start track.Cell) ([]track.Cell, error) {
	body, err := json.Marshal(e.buildRequest(start))
	if err != nil {
		return nil, fmt.Errorf("exec solver: encode request: %w", err)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.argv[0], e.argv[1:]...)
	cmd.Stdin = bytes.NewReader(body)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = killWaitDelay
	killProcessGroup(cmd)

	begin := time.Now()
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s: timed out after %s", ErrSolverFailed, e.argv[0], time.Since(begin).Round(time.Millisecond))
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%w: %s: %v: %s", ErrSolverFailed, e.argv[0], err, msg)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSolverFailed, e.argv[0], err)
	}

	path, err := decodePath(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSolverFailed, e.argv[0], err)
	}
	logger.Log.Printf("[Solver] %s: %s -> %s, %d waypoints in %s",
		e.argv[0], start, e.layers.Target, len(path), time.Since(begin).Round(time.Microsecond))
	return path, nil
}

func (e *Exec) buildRequest(start track.Cell) request {
	return request{
		Rows:         e.layers.Rows,
		Cols:         e.layers.Cols,
		Walls:        widen(e.layers.Walls),
		Active:       widen(e.layers.Active),
		Buttons:      widen(e.layers.Buttons),
		WallColors:   e.layers.WallColors,
		ButtonColors: e.layers.ButtonColors,
		Target:       e.layers.Target,
		Start:        start,
	}
}

// []uint8 would be base64 in JSON; send numbers instead.
func widen(b []uint8) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

// decodePath accepts {"path": [[r,c],...]} or a bare [[r,c],...].
func decodePath(out []byte) ([]track.Cell, error) {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty output")
	}

	var path []track.Cell
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &path); err != nil {
			return nil, fmt.Errorf("decode path: %w", err)
		}
	} else {
		var wrap struct {
			Path []track.Cell `json:"path"`
		}
		if err := json.Unmarshal(trimmed, &wrap); err != nil {
			return nil, fmt.Errorf("decode path: %w", err)
		}
		path = wrap.Path
	}
	if path == nil {
		path = []track.Cell{}
	}
	return path, nil
}
