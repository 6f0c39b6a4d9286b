package comm

import (
	"sync"
	"time"

	"github.com/vgerber/grbl-interface/grbl"
)

// Simulator is an in-memory Endpoint for tests and development without
// hardware.  Every written line is handed to Script, and whatever
// lines it returns are queued as if the controller had sent them.
type Simulator struct {
	// Script produces the controller's response lines for one written
	// command.  A nil Script acknowledges everything with "ok".
	Script func(line string) []string

	mu      sync.Mutex
	open    bool
	pending []string
	written []string
}

// NewSimulator returns a closed simulator with the given script.
func NewSimulator(script func(line string) []string) *Simulator {
	return &Simulator{Script: script}
}

// Open marks the simulator connected.
func (s *Simulator) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		return &grbl.Error{Kind: grbl.AlreadyOpen, Field: "simulator"}
	}
	s.open = true
	return nil
}

// Close marks the simulator disconnected.
func (s *Simulator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return &grbl.Error{Kind: grbl.NotOpen, Field: "simulator"}
	}
	s.open = false
	return nil
}

// Write records the line and queues the scripted response.
func (s *Simulator) Write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return &grbl.Error{Kind: grbl.NotOpen, Field: "simulator"}
	}
	s.written = append(s.written, line)
	if s.Script == nil {
		s.pending = append(s.pending, "ok")
		return nil
	}
	s.pending = append(s.pending, s.Script(line)...)
	return nil
}

// ReadNewMessages drains the queued response lines.  The simulator
// answers instantly, so the timeout only caps the wait when nothing is
// pending.
func (s *Simulator) ReadNewMessages(timeout time.Duration) []string {
	deadline := time.Now().Add(timeout)
	for {
		s.mu.Lock()
		if len(s.pending) > 0 {
			out := s.pending
			s.pending = nil
			s.mu.Unlock()
			return out
		}
		s.mu.Unlock()
		if time.Now().After(deadline) {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
}

// Inject queues lines as unsolicited controller output (status
// reports, messages).
func (s *Simulator) Inject(lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, lines...)
}

// Written returns every line written so far, in order.
func (s *Simulator) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.written))
	copy(out, s.written)
	return out
}
