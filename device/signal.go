package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const machineSignalPrefix = "PN:"

// MachineSignal is one asserted controller input, reported as a letter
// in the "PN:" report field.
type MachineSignal int

const (
	ProbeTriggered MachineSignal = iota
	ProbeDisconnected
	XLimitSwitchAsserted
	YLimitSwitchAsserted
	ZLimitSwitchAsserted
	ALimitSwitchAsserted
	BLimitSwitchAsserted
	CLimitSwitchAsserted
	DoorSwitchAsserted
	ResetSwitchAsserted
	FeedHoldSwitchAsserted
	CycleStartSwitchAsserted
	EStopSwitchAsserted
	BlockDeleteSwitchAsserted
	OptionalProgramStopSwitchAsserted
	MotorWarning
	MotorFault
)

var machineSignalLetters = map[string]MachineSignal{
	"P": ProbeTriggered,
	"O": ProbeDisconnected,
	"X": XLimitSwitchAsserted,
	"Y": YLimitSwitchAsserted,
	"Z": ZLimitSwitchAsserted,
	"A": ALimitSwitchAsserted,
	"B": BLimitSwitchAsserted,
	"C": CLimitSwitchAsserted,
	"D": DoorSwitchAsserted,
	"R": ResetSwitchAsserted,
	"H": FeedHoldSwitchAsserted,
	"S": CycleStartSwitchAsserted,
	"E": EStopSwitchAsserted,
	"L": BlockDeleteSwitchAsserted,
	"T": OptionalProgramStopSwitchAsserted,
	"W": MotorWarning,
	"M": MotorFault,
}

// IsMachineSignal reports whether token has the signal-list shape.
func IsMachineSignal(token string) bool {
	return strings.HasPrefix(token, machineSignalPrefix)
}

// ParseMachineSignals decodes "PN:<letters>"; an unknown letter fails
// the whole token.
func ParseMachineSignals(token string) ([]MachineSignal, error) {
	if !IsMachineSignal(token) {
		return nil, grbl.ParseErr(grbl.MalformedGrammar, "machine signals", token)
	}
	var signals []MachineSignal
	for _, tok := range grbl.SingleByteTokens(token[len(machineSignalPrefix):]) {
		signal, ok := machineSignalLetters[tok]
		if !ok {
			return nil, grbl.ParseErr(grbl.UnknownEnumValue, "signal", tok)
		}
		signals = append(signals, signal)
	}
	return signals, nil
}

// SignalMask folds decoded signals into the u32 mask representation.
func SignalMask(signals []MachineSignal) uint32 {
	var mask uint32
	for _, s := range signals {
		mask |= signalBit(s)
	}
	return mask
}

func signalBit(s MachineSignal) uint32 {
	switch s {
	case ProbeTriggered:
		return grbl.SignalProbe
	case ProbeDisconnected:
		return grbl.SignalProbeDisconnected
	case XLimitSwitchAsserted:
		return grbl.SignalLimitX
	case YLimitSwitchAsserted:
		return grbl.SignalLimitY
	case ZLimitSwitchAsserted:
		return grbl.SignalLimitZ
	case ALimitSwitchAsserted:
		return grbl.SignalLimitA
	case BLimitSwitchAsserted:
		return grbl.SignalLimitB
	case CLimitSwitchAsserted:
		return grbl.SignalLimitC
	case DoorSwitchAsserted:
		return grbl.SignalSafetyDoor
	case ResetSwitchAsserted:
		return grbl.SignalReset
	case FeedHoldSwitchAsserted:
		return grbl.SignalHold
	case CycleStartSwitchAsserted:
		return grbl.SignalCycleStart
	case EStopSwitchAsserted:
		return grbl.SignalEStop
	case BlockDeleteSwitchAsserted:
		return grbl.SignalBlockDelete
	case OptionalProgramStopSwitchAsserted:
		return grbl.SignalOptionalStop
	case MotorWarning, MotorFault:
		return grbl.SignalMotorWarning
	}
	return 0
}
