package service

import (
	"context"
	"log"

	"golang.org/x/time/rate"

	"github.com/vgerber/grbl-interface/grbl"
)

// EnableStatusPolling starts issuing realtime status report requests
// to the device at the given rate (reports per second).  grbl hosts
// conventionally poll between 5 and 10 Hz; the limiter keeps a slow
// wire from accumulating a backlog of '?' bytes.
func (s *DeviceService) EnableStatusPolling(id string, hz float64) error {
	h, err := s.handle(id)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pollStop != nil {
		return &grbl.Error{Kind: grbl.AlreadyOpen, Field: id + " status poll"}
	}
	stop := make(chan struct{})
	h.pollStop = stop
	go h.poll(rate.NewLimiter(rate.Limit(hz), 1), stop)
	return nil
}

// DisableStatusPolling stops a running status poll.  Disabling an
// idle poll is a no-op.
func (s *DeviceService) DisableStatusPolling(id string) error {
	h, err := s.handle(id)
	if err != nil {
		return err
	}
	h.stopPolling()
	return nil
}

func (h *deviceHandle) stopPolling() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pollStop != nil {
		close(h.pollStop)
		h.pollStop = nil
	}
}

func (h *deviceHandle) poll(lim *rate.Limiter, stop chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-stop:
		case <-h.closeCh:
		}
		cancel()
	}()

	for {
		if err := lim.Wait(ctx); err != nil {
			return
		}
		// a full write queue just means this tick is skipped
		if err := h.enqueue(grbl.StatusReport); err != nil {
			log.Printf("service: %s: status poll skipped: %v", h.id, err)
		}
	}
}
