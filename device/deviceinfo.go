package device

// DeviceInfo is the live model of one controller, built up line by
// line from its responses.  It is uniquely owned by the device worker;
// readers obtain a copied snapshot through the service layer.
type DeviceInfo struct {
	id string

	Firmware    FirmwareInfo
	MachineInfo *MachineInfo
	GCodeState  *GCodeState

	LastMessage     *Message
	LastEchoMessage *EchoMessage
	LastHelp        *Help

	Settings    *DeviceSettings
	StatusCodes *StatusCodes
}

// NewDeviceInfo creates an empty model for the device with the given
// opaque id.
func NewDeviceInfo(id string) *DeviceInfo {
	return &DeviceInfo{
		id:          id,
		Settings:    NewDeviceSettings(),
		StatusCodes: NewStatusCodes(),
	}
}

// ID returns the device's opaque identifier.
func (d *DeviceInfo) ID() string { return d.id }

// UpdateMachineInfo merges a freshly decoded status report into the
// model.  Reports are sparse: only fields that changed since the last
// report are present, so the merge is field-wise and non-destructive —
// the mandatory machine state always replaces, present optional fields
// overwrite, absent ones keep their prior value.
func (d *DeviceInfo) UpdateMachineInfo(next MachineInfo) {
	if d.MachineInfo == nil {
		d.MachineInfo = &next
		return
	}

	old := d.MachineInfo
	old.MachineState = next.MachineState

	if next.GlobalPosition != nil {
		old.GlobalPosition = next.GlobalPosition
	}
	if next.LocalPosition != nil {
		old.LocalPosition = next.LocalPosition
	}
	if next.LocalOffset != nil {
		old.LocalOffset = next.LocalOffset
	}
	if next.BufferState != nil {
		old.BufferState = next.BufferState
	}
	if next.LineNumber != nil {
		old.LineNumber = next.LineNumber
	}
	if next.MachineSpeed != nil {
		old.MachineSpeed = next.MachineSpeed
	}
	if next.MachineSignals != nil {
		old.MachineSignals = next.MachineSignals
	}
	if next.MachineCoordinateSystem != nil {
		old.MachineCoordinateSystem = next.MachineCoordinateSystem
	}
	if next.OverrideValues != nil {
		old.OverrideValues = next.OverrideValues
	}
	if next.AccessoryState != nil {
		old.AccessoryState = next.AccessoryState
	}
	if next.PendantControl != nil {
		old.PendantControl = next.PendantControl
	}
	if next.HomingState != nil {
		old.HomingState = next.HomingState
	}
	if next.ScaledAxes != nil {
		old.ScaledAxes = next.ScaledAxes
	}
	if next.ToolLengthReferenceSet != nil {
		old.ToolLengthReferenceSet = next.ToolLengthReferenceSet
	}
	if next.Firmware != nil {
		old.Firmware = next.Firmware
	}
	if next.InputWaitResult != nil {
		old.InputWaitResult = next.InputWaitResult
	}
	if next.ArcMode != nil {
		old.ArcMode = next.ArcMode
	}
}

// Snapshot returns a deep enough copy for a concurrent reader: the
// catalogs are cloned, the machine info struct is copied, and the
// immutable decoded values are shared.
func (d *DeviceInfo) Snapshot() DeviceInfo {
	out := DeviceInfo{
		id:              d.id,
		Firmware:        d.Firmware,
		GCodeState:      d.GCodeState,
		LastMessage:     d.LastMessage,
		LastEchoMessage: d.LastEchoMessage,
		LastHelp:        d.LastHelp,
		Settings:        d.Settings.clone(),
		StatusCodes:     d.StatusCodes.clone(),
	}
	if d.MachineInfo != nil {
		mi := *d.MachineInfo
		out.MachineInfo = &mi
	}
	return out
}
