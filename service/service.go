// Package service maintains the live model of every attached
// controller.  Each open device gets a worker goroutine that owns the
// endpoint, pumps incoming lines through the response decoders under
// the device mutex, and forwards queued outbound commands to the wire.
package service

import (
	"log"
	"sync"
	"time"

	"github.com/vgerber/grbl-interface/comm"
	"github.com/vgerber/grbl-interface/device"
	"github.com/vgerber/grbl-interface/grbl"
)

// EndpointKind selects the transport for a device.
type EndpointKind int

const (
	// Serial is the only implemented transport.
	Serial EndpointKind = iota
	// Ethernet is reserved; opening one fails.
	Ethernet
)

// DeviceDescription identifies a device and how to reach it.  For
// serial devices the ID is the port name.
type DeviceDescription struct {
	ID   string
	Kind EndpointKind
}

const (
	workerPollTimeout = time.Millisecond
	workerBreath      = 10 * time.Millisecond

	writeQueueDepth = 64
)

// deviceHandle couples one worker goroutine with its endpoint, its
// shutdown and write channels, and the shared device model.
type deviceHandle struct {
	id       string
	endpoint comm.Endpoint

	mu   sync.Mutex
	info *device.DeviceInfo

	closeCh chan struct{}
	writeCh chan string
	doneCh  chan struct{}

	pollStop chan struct{}
}

// DeviceService owns the handle table of all attached devices.  All
// methods are safe for concurrent use.
type DeviceService struct {
	mu      sync.Mutex
	handles map[string]*deviceHandle

	// NewEndpoint builds the transport for a description.  It exists
	// so tests can substitute a simulator; the default constructs a
	// serial endpoint at the standard baud rate.
	NewEndpoint func(DeviceDescription) (comm.Endpoint, error)
}

// New creates an empty service.
func New() *DeviceService {
	return &DeviceService{
		handles:     make(map[string]*deviceHandle),
		NewEndpoint: defaultEndpoint,
	}
}

func defaultEndpoint(desc DeviceDescription) (comm.Endpoint, error) {
	switch desc.Kind {
	case Serial:
		return comm.NewSerialEndpoint(desc.ID, comm.DefaultBaudRate), nil
	}
	// Ethernet is reserved in the descriptor format but has no transport
	return nil, &grbl.Error{Kind: grbl.UnknownEnumValue, Field: "endpoint kind", Value: "Ethernet"}
}

// GetAvailableDevices enumerates the serial USB ports a controller
// could be attached to.
func (s *DeviceService) GetAvailableDevices() []DeviceDescription {
	ports := comm.FindSerialPorts()
	devices := make([]DeviceDescription, 0, len(ports))
	for _, p := range ports {
		devices = append(devices, DeviceDescription{ID: p.Name, Kind: Serial})
	}
	return devices
}

// OpenDevice attaches the described device: it opens the endpoint,
// starts the worker, and queues the metadata query sequence so a fresh
// model converges without caller involvement.
func (s *DeviceService) OpenDevice(desc DeviceDescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.handles[desc.ID]; exists {
		return &grbl.Error{Kind: grbl.DuplicateDeviceID, Value: desc.ID}
	}

	endpoint, err := s.NewEndpoint(desc)
	if err != nil {
		return err
	}
	if err := endpoint.Open(); err != nil {
		return err
	}

	h := &deviceHandle{
		id:       desc.ID,
		endpoint: endpoint,
		info:     device.NewDeviceInfo(desc.ID),
		closeCh:  make(chan struct{}),
		writeCh:  make(chan string, writeQueueDepth),
		doneCh:   make(chan struct{}),
	}
	go h.run()

	for _, cmd := range grbl.LoadDeviceMetadataCommands() {
		h.enqueue(frameCommand(cmd))
	}

	s.handles[desc.ID] = h
	return nil
}

// CloseDevice detaches the device: the worker is signalled, joined,
// and the handle removed.
func (s *DeviceService) CloseDevice(id string) error {
	s.mu.Lock()
	h, ok := s.handles[id]
	if !ok {
		s.mu.Unlock()
		return &grbl.Error{Kind: grbl.UnknownDevice, Value: id}
	}
	delete(s.handles, id)
	s.mu.Unlock()

	h.stopPolling()
	close(h.closeCh)
	<-h.doneCh
	return h.endpoint.Close()
}

// IsDeviceConnected reports whether the device id has an open handle.
func (s *DeviceService) IsDeviceConnected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.handles[id]
	return ok
}

// GetDeviceInfo returns a consistent snapshot of the device model.
func (s *DeviceService) GetDeviceInfo(id string) (device.DeviceInfo, error) {
	h, err := s.handle(id)
	if err != nil {
		return device.DeviceInfo{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.info.Snapshot(), nil
}

// WriteDeviceCommand queues one command line for the device.  Commands
// that are acknowledged get a newline terminator; realtime characters
// and the sync sequence go to the wire as they are.
func (s *DeviceService) WriteDeviceCommand(id, line string) error {
	h, err := s.handle(id)
	if err != nil {
		return err
	}
	return h.enqueue(frameCommand(line))
}

// Close detaches every remaining device.
func (s *DeviceService) Close() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.handles))
	for id := range s.handles {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		if err := s.CloseDevice(id); err != nil {
			log.Printf("service: close %s: %v", id, err)
		}
	}
}

func (s *DeviceService) handle(id string) (*deviceHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.handles[id]
	if !ok {
		return nil, &grbl.Error{Kind: grbl.UnknownDevice, Value: id}
	}
	return h, nil
}

// frameCommand applies the outbound terminator convention.
func frameCommand(cmd string) string {
	if cmd == grbl.Sync || !grbl.HasStatusResponse(cmd) {
		return cmd
	}
	return cmd + "\n"
}

// enqueue places a framed line on the worker's write queue.
func (h *deviceHandle) enqueue(line string) error {
	select {
	case h.writeCh <- line:
		return nil
	default:
		return &grbl.Error{Kind: grbl.EndpointBusy, Field: h.id}
	}
}

// run is the worker loop: check shutdown, drain incoming lines into
// the model, forward one queued write, breathe.
func (h *deviceHandle) run() {
	defer close(h.doneCh)
	for {
		select {
		case <-h.closeCh:
			return
		default:
		}

		messages := h.endpoint.ReadNewMessages(workerPollTimeout)
		if len(messages) > 0 {
			h.mu.Lock()
			for _, msg := range messages {
				if err := device.ReadResponse(msg, h.info); err != nil {
					log.Printf("service: %s: %v", h.id, err)
				}
			}
			h.mu.Unlock()
		}

		select {
		case line := <-h.writeCh:
			if err := h.endpoint.Write(line); err != nil {
				log.Printf("service: %s: %v", h.id, err)
			}
		case <-time.After(workerPollTimeout):
		}

		time.Sleep(workerBreath)
	}
}
