package host

import "potato-racer/internal/track"

// Request is one tick sent by the game host. Track may be omitted to reuse
// the session's current snapshot.
type Request struct {
	Tick     int          `json:"tick"`
	Location track.Cell   `json:"location"`
	Track    *track.Track `json:"track,omitempty"`
}

type Response struct {
	Tick      int        `json:"tick"`
	Step      track.Step `json:"step"`
	Replanned bool       `json:"replanned,omitempty"`
	Remaining int        `json:"remaining"`
	Error     string     `json:"error,omitempty"`
}
