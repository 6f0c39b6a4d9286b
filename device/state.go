package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

// MachineStatus names the top-level machine state of a status report.
type MachineStatus int

const (
	StatusIdle MachineStatus = iota
	StatusRun
	StatusHold
	StatusJog
	StatusAlarm
	StatusDoor
	StatusCheck
	StatusHome
	StatusSleep
	StatusTool
)

var machineStatusNames = map[string]MachineStatus{
	"Idle":  StatusIdle,
	"Run":   StatusRun,
	"Hold":  StatusHold,
	"Jog":   StatusJog,
	"Alarm": StatusAlarm,
	"Door":  StatusDoor,
	"Check": StatusCheck,
	"Home":  StatusHome,
	"Sleep": StatusSleep,
	"Tool":  StatusTool,
}

// MachineState is the mandatory first token of a status report,
// "<Name>[:<sub>]".  Hold, Door and a few other states qualify
// themselves with a small sub-status code.
type MachineState struct {
	Status    MachineStatus
	SubStatus *int8
}

// ParseMachineState decodes the state token of a report.
func ParseMachineState(token string) (MachineState, error) {
	segments := grbl.SplitOn(token, ":")

	status, ok := machineStatusNames[segments[0]]
	if !ok {
		return MachineState{}, grbl.ParseErr(grbl.UnknownEnumValue, "status name", segments[0])
	}

	state := MachineState{Status: status}
	if len(segments) > 1 {
		sub, err := grbl.ParseIntField(segments[1], "machine sub status", 8)
		if err != nil {
			return MachineState{}, err
		}
		v := int8(sub)
		state.SubStatus = &v
	}
	return state, nil
}

const machineSpeedPrefix = "FS:"

// MachineSpeed is the "FS:" report field: current feed rate, the
// programmed spindle speed, and (grblHAL with spindle sync) the
// measured spindle speed.
type MachineSpeed struct {
	FeedRate             int
	SpindleProgrammedRPM int
	SpindleActualRPM     *int
}

// IsMachineSpeed reports whether token has the machine-speed shape.
func IsMachineSpeed(token string) bool {
	return strings.HasPrefix(token, machineSpeedPrefix)
}

// ParseMachineSpeed decodes "FS:<feed>,<programmed rpm>[,<actual rpm>]".
func ParseMachineSpeed(token string) (MachineSpeed, error) {
	if !IsMachineSpeed(token) {
		return MachineSpeed{}, grbl.ParseErr(grbl.MalformedGrammar, "machine speed", token)
	}
	values := grbl.SplitOn(token[len(machineSpeedPrefix):], ",")
	if len(values) < 2 || len(values) > 3 {
		return MachineSpeed{}, grbl.ParseErr(grbl.WrongFieldCount, "machine speed values", token)
	}

	feed, err := grbl.ParseIntField(values[0], "feed rate", 32)
	if err != nil {
		return MachineSpeed{}, err
	}
	programmed, err := grbl.ParseIntField(values[1], "spindle programmed rpm", 32)
	if err != nil {
		return MachineSpeed{}, err
	}

	speed := MachineSpeed{FeedRate: int(feed), SpindleProgrammedRPM: int(programmed)}
	if len(values) == 3 {
		actual, err := grbl.ParseIntField(values[2], "spindle actual rpm", 32)
		if err != nil {
			return MachineSpeed{}, err
		}
		v := int(actual)
		speed.SpindleActualRPM = &v
	}
	return speed, nil
}

const bufferStatePrefix = "Bf:"

// BufferState is the "Bf:" report field: remaining planner blocks and
// remaining serial receive capacity in characters.
type BufferState struct {
	BlockBuffersFree int
	RxCharactersFree int
}

// IsBufferState reports whether token has the buffer-state shape.
func IsBufferState(token string) bool {
	return strings.HasPrefix(token, bufferStatePrefix)
}

// ParseBufferState decodes "Bf:<blocks free>,<rx chars free>".
func ParseBufferState(token string) (BufferState, error) {
	if !IsBufferState(token) {
		return BufferState{}, grbl.ParseErr(grbl.MalformedGrammar, "buffer state", token)
	}
	values := grbl.SplitOn(token[len(bufferStatePrefix):], ",")
	if len(values) != 2 {
		return BufferState{}, grbl.ParseErr(grbl.WrongFieldCount, "buffer state values", token)
	}
	blocks, err := grbl.ParseIntField(values[0], "block buffers free", 32)
	if err != nil {
		return BufferState{}, err
	}
	rx, err := grbl.ParseIntField(values[1], "rx characters free", 32)
	if err != nil {
		return BufferState{}, err
	}
	return BufferState{BlockBuffersFree: int(blocks), RxCharactersFree: int(rx)}, nil
}

const overridesPrefix = "Ov:"

// Overrides is the "Ov:" report field: runtime scaling percentages.
type Overrides struct {
	FeedRatePercentage     int
	RapidsPercentage       int
	SpindleSpeedPercentage int
}

// IsOverrides reports whether token has the overrides shape.
func IsOverrides(token string) bool {
	return strings.HasPrefix(token, overridesPrefix)
}

// ParseOverrides decodes "Ov:<feed>,<rapids>,<spindle>".
func ParseOverrides(token string) (Overrides, error) {
	if !IsOverrides(token) {
		return Overrides{}, grbl.ParseErr(grbl.MalformedGrammar, "overrides", token)
	}
	values := grbl.SplitOn(token[len(overridesPrefix):], ",")
	if len(values) != 3 {
		return Overrides{}, grbl.ParseErr(grbl.WrongFieldCount, "override values", token)
	}
	feed, err := grbl.ParseIntField(values[0], "feed rate override", 32)
	if err != nil {
		return Overrides{}, err
	}
	rapids, err := grbl.ParseIntField(values[1], "rapids override", 32)
	if err != nil {
		return Overrides{}, err
	}
	spindle, err := grbl.ParseIntField(values[2], "spindle speed override", 32)
	if err != nil {
		return Overrides{}, err
	}
	return Overrides{
		FeedRatePercentage:     int(feed),
		RapidsPercentage:       int(rapids),
		SpindleSpeedPercentage: int(spindle),
	}, nil
}
