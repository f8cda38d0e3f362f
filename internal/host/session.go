package host

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"potato-racer/internal/agent"
	"potato-racer/internal/logger"
	"potato-racer/internal/metrics"
	"potato-racer/internal/track"
)

var ErrNoTrack = errors.New("no track snapshot: send one with the request or start with --track")

const maxLineBytes = 4 << 20

// Session binds one long-lived agent to a stream of tick requests.
type Session struct {
	ID    string
	agent *agent.Agent

	mu      sync.Mutex
	current *track.Track
	metrics metrics.SessionMetrics
}

func NewSession(a *agent.Agent, initial *track.Track) *Session {
	id := uuid.New().String()[:8]
	return &Session{
		ID:      id,
		agent:   a,
		current: initial,
		metrics: metrics.SessionMetrics{SessionID: id, Start: time.Now()},
	}
}

// SetTrack replaces the snapshot used by requests that carry none.
// Safe to call from a watcher goroutine.
func (s *Session) SetTrack(t *track.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = t
}

func (s *Session) Track() *track.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Handle answers one request. Errors are reported in the response; the
// session stays usable and the next tick plans again.
func (s *Session) Handle(ctx context.Context, req Request) Response {
	begin := time.Now()
	resp := Response{Tick: req.Tick}
	tm := metrics.TickMetrics{Tick: req.Tick, Location: req.Location}

	t := req.Track
	if t == nil {
		t = s.Track()
	} else {
		s.SetTrack(t)
	}

	if t == nil {
		resp.Error = ErrNoTrack.Error()
	} else {
		out, err := s.agent.MoveDetailed(ctx, req.Location, t)
		resp.Step = out.Step
		resp.Replanned = out.Replanned
		resp.Remaining = out.Remaining
		tm.Step = out.Step
		tm.Replanned = out.Replanned
		tm.Consumed = out.Consumed
		tm.Remaining = out.Remaining
		tm.SolverUs = out.SolverTime.Microseconds()
		if err != nil {
			resp.Error = err.Error()
			logger.Log.Printf("[Session %s] tick %d at %s: %v", s.ID, req.Tick, req.Location, err)
		}
	}
	tm.Err = resp.Error
	tm.DurationUs = time.Since(begin).Microseconds()

	s.mu.Lock()
	s.metrics.Record(tm)
	s.mu.Unlock()
	return resp
}

// Serve reads newline-delimited JSON requests from r and writes one JSON
// response line per request to w until EOF or ctx is done. Cancellation is
// seen even while r blocks; the reading goroutine exits on its next line.
func (s *Session) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	logger.Log.Printf("[Session %s] serving", s.ID)
	defer logger.Log.Printf("[Session %s] closed", s.ID)

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	enc := json.NewEncoder(w)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var line []byte
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read requests: %w", err)
				}
				return nil
			}
			line = l
		}
		if len(line) == 0 {
			continue
		}

		var req Request
		var resp Response
		if err := json.Unmarshal(line, &req); err != nil {
			resp = Response{Tick: req.Tick, Error: fmt.Sprintf("bad request: %v", err)}
		} else {
			resp = s.Handle(ctx, req)
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// Metrics returns a finalized copy of the session metrics.
func (s *Session) Metrics() *metrics.SessionMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.metrics
	cp.Recent = append([]metrics.TickMetrics(nil), s.metrics.Recent...)
	cp.End = time.Now()
	cp.Finalize()
	return &cp
}
