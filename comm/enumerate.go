package comm

import (
	"go.bug.st/serial/enumerator"
)

// PortInfo describes one discovered serial port.
type PortInfo struct {
	Name string

	// VID and PID are the USB identifiers, hex encoded as the
	// enumerator reports them.
	VID string
	PID string

	Product string
}

// FindSerialPorts enumerates the serial ports backed by a USB device.
// Controllers present themselves as CDC devices, so everything else
// (onboard UARTs, virtual consoles) is filtered out.  Enumeration
// failures yield an empty list: a host with no ports and a host whose
// enumeration broke look the same to the caller, and neither is fatal.
func FindSerialPorts() []PortInfo {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil
	}
	var ports []PortInfo
	for _, d := range details {
		if !d.IsUSB {
			continue
		}
		ports = append(ports, PortInfo{
			Name:    d.Name,
			VID:     d.VID,
			PID:     d.PID,
			Product: d.Product,
		})
	}
	return ports
}
