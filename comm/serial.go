package comm

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/tarm/serial"

	"github.com/vgerber/grbl-interface/grbl"
)

// DefaultBaudRate is what grbl and grblHAL builds ship with.
const DefaultBaudRate = 115200

const (
	// syncSettleTime is how long the firmware gets to wake up after
	// the startup sync sequence before its buffers are flushed.
	syncSettleTime = 2 * time.Second

	portReadTimeout  = 10 * time.Millisecond
	writePollTimeout = time.Millisecond

	writeQueueDepth = 64
	readQueueDepth  = 4096
)

// SerialEndpoint drives one controller over a 115200 8N1 serial port.
// Open spawns a dedicated I/O goroutine owning the port handle; the
// rest of the program interacts only through the write queue and the
// read queue.
type SerialEndpoint struct {
	portName string
	baudRate int

	mu    sync.Mutex
	state endpointState

	closeCh chan struct{}
	doneCh  chan struct{}
	writeCh chan string
	readCh  chan string
}

// NewSerialEndpoint configures an endpoint for the named port.  The
// connection is not opened until Open is called.
func NewSerialEndpoint(portName string, baudRate int) *SerialEndpoint {
	return &SerialEndpoint{portName: portName, baudRate: baudRate}
}

// Open connects the port and starts the I/O goroutine.  Opening is
// retried briefly with exponential backoff: CDC devices reappear a
// moment after enumeration and thrashing them helps nothing.
func (s *SerialEndpoint) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateClosed {
		return &grbl.Error{Kind: grbl.AlreadyOpen, Field: s.portName}
	}
	s.state = stateOpening

	cfg := &serial.Config{
		Name:        s.portName,
		Baud:        s.baudRate,
		ReadTimeout: portReadTimeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	}

	var port *serial.Port
	op := func() error {
		var err error
		port, err = serial.OpenPort(cfg)
		return err
	}
	err := backoff.Retry(op, &backoff.ExponentialBackOff{
		InitialInterval:     25 * time.Millisecond,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         1 * time.Second,
		MaxElapsedTime:      3 * time.Second,
		Clock:               backoff.SystemClock,
	})
	if err != nil {
		s.state = stateClosed
		return &grbl.Error{Kind: grbl.TransportOpen, Field: s.portName, Err: err}
	}

	s.closeCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.writeCh = make(chan string, writeQueueDepth)
	s.readCh = make(chan string, readQueueDepth)
	go s.ioLoop(port)

	s.state = stateOpen
	return nil
}

// Close signals the I/O goroutine and waits for it to release the
// port.
func (s *SerialEndpoint) Close() error {
	s.mu.Lock()
	if s.state != stateOpen {
		s.mu.Unlock()
		return &grbl.Error{Kind: grbl.NotOpen, Field: s.portName}
	}
	s.state = stateClosing
	close(s.closeCh)
	done := s.doneCh
	s.mu.Unlock()

	<-done

	s.mu.Lock()
	s.state = stateClosed
	s.closeCh, s.doneCh, s.writeCh, s.readCh = nil, nil, nil, nil
	s.mu.Unlock()
	return nil
}

// Write queues one line for transmission.  The line goes to the wire
// exactly as given; terminators are the caller's concern.
func (s *SerialEndpoint) Write(line string) error {
	s.mu.Lock()
	ch := s.writeCh
	open := s.state == stateOpen
	s.mu.Unlock()
	if !open {
		return &grbl.Error{Kind: grbl.NotOpen, Field: s.portName}
	}
	select {
	case ch <- line:
		return nil
	default:
		return &grbl.Error{Kind: grbl.EndpointBusy, Field: s.portName}
	}
}

// ReadNewMessages collects lines received since the last call until
// the timeout elapses, in arrival order.
func (s *SerialEndpoint) ReadNewMessages(timeout time.Duration) []string {
	s.mu.Lock()
	ch := s.readCh
	s.mu.Unlock()
	if ch == nil {
		return nil
	}

	var messages []string
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return messages
		}
		select {
		case msg := <-ch:
			messages = append(messages, msg)
		case <-time.After(remaining):
			return messages
		}
	}
}

// ioLoop owns the port: it performs the wake-up sequence, then pumps
// bytes into framed lines and queued writes onto the wire until the
// close signal arrives.
func (s *SerialEndpoint) ioLoop(port *serial.Port) {
	defer close(s.doneCh)
	defer port.Close()

	s.sendStartup(port)

	var frames lineBuffer
	readBuf := make([]byte, 1024)
	for {
		// ingress: the port read returns within portReadTimeout
		n, err := port.Read(readBuf)
		if n > 0 {
			for _, line := range frames.push(readBuf[:n]) {
				select {
				case s.readCh <- line:
				case <-s.closeCh:
					return
				}
			}
		}
		if err != nil && err != io.EOF {
			log.Printf("comm: read on %s: %v", s.portName, err)
		}

		// egress: at most one queued line per iteration
		select {
		case line := <-s.writeCh:
			// Write on the tarm port blocks until the kernel has the
			// bytes; there is no separate drain step
			if _, err := port.Write([]byte(line)); err != nil {
				log.Printf("comm: write %q to %s: %v", line, s.portName, err)
			}
		case <-time.After(writePollTimeout):
		}

		select {
		case <-s.closeCh:
			return
		default:
		}
	}
}

// sendStartup emits two sync sequences, lets the firmware settle, and
// clears the buffers.  A controller that was left in a suspended state
// wakes on the syncs; the flush drops whatever it printed meanwhile.
func (s *SerialEndpoint) sendStartup(port *serial.Port) {
	for i := 0; i < 2; i++ {
		if _, err := port.Write([]byte(grbl.Sync)); err != nil {
			log.Printf("comm: startup sync on %s: %v", s.portName, err)
			return
		}
	}
	time.Sleep(syncSettleTime)
	if err := port.Flush(); err != nil {
		log.Printf("comm: startup flush on %s: %v", s.portName, err)
	}
}
