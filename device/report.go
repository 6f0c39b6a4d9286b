package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const (
	reportPrefix = "<"
	reportSuffix = ">"
)

// MachineInfo is one decoded machine status report "<...>".  The
// machine state and exactly one of GlobalPosition/LocalPosition are
// always present; every other field is nil unless the firmware
// included it in this report.
type MachineInfo struct {
	MachineState MachineState

	// GlobalPosition (MPos) is absolute in machine space;
	// LocalPosition (WPos) is relative to the work offset.  A report
	// carries one or the other, never both.
	GlobalPosition MachinePosition
	LocalPosition  MachinePosition

	LocalOffset             MachinePosition
	BufferState             *BufferState
	LineNumber              *int
	MachineSpeed            *MachineSpeed
	MachineSignals          []MachineSignal
	MachineCoordinateSystem *string
	OverrideValues          *Overrides
	AccessoryState          []AccessoryState
	PendantControl          *PendantControl
	HomingState             *HomingState
	ScaledAxes              []grbl.Axis
	ToolLengthReferenceSet  *bool
	Firmware                *string
	InputWaitResult         *bool
	ArcMode                 *ArcMode
}

// IsReportResponse reports whether line has the status-report shape.
func IsReportResponse(line string) bool {
	return strings.HasPrefix(line, reportPrefix) && strings.HasSuffix(line, reportSuffix)
}

// ParseReport decodes a full status report.  Any sub-decoder failure
// aborts the whole report; nothing is emitted on error.
func ParseReport(line string) (MachineInfo, error) {
	if !IsReportResponse(line) {
		return MachineInfo{}, grbl.ParseErr(grbl.MalformedGrammar, "report response", line)
	}
	body := line[len(reportPrefix) : len(line)-len(reportSuffix)]
	tokens := grbl.SplitOn(body, "|")

	info, err := parseMandatoryReportState(tokens)
	if err != nil {
		return MachineInfo{}, err
	}
	if err := parseOptionalReportFields(&info, tokens[2:]); err != nil {
		return MachineInfo{}, err
	}
	return info, nil
}

// parseMandatoryReportState consumes the machine state and position
// tokens every report must carry.
func parseMandatoryReportState(tokens []string) (MachineInfo, error) {
	if len(tokens) < 2 {
		return MachineInfo{}, reportErr(grbl.ParseErr(grbl.WrongFieldCount, "report states", strings.Join(tokens, "|")))
	}

	state, err := ParseMachineState(tokens[0])
	if err != nil {
		return MachineInfo{}, reportErr(err)
	}

	info := MachineInfo{MachineState: state}
	switch {
	case IsLocalPosition(tokens[1]):
		pos, err := ParseLocalPosition(tokens[1])
		if err != nil {
			return MachineInfo{}, reportErr(err)
		}
		info.LocalPosition = pos
	case IsGlobalPosition(tokens[1]):
		pos, err := ParseGlobalPosition(tokens[1])
		if err != nil {
			return MachineInfo{}, reportErr(err)
		}
		info.GlobalPosition = pos
	default:
		return MachineInfo{}, reportErr(grbl.ParseErr(grbl.MalformedGrammar, "machine position", tokens[1]))
	}
	return info, nil
}

// parseOptionalReportFields attempts every field decoder against each
// remaining token; the first match consumes it, later occurrences of
// the same field overwrite, unknown tokens are ignored.
func parseOptionalReportFields(info *MachineInfo, tokens []string) error {
	for _, token := range tokens {
		var err error
		switch {
		case IsBufferState(token):
			var v BufferState
			if v, err = ParseBufferState(token); err == nil {
				info.BufferState = &v
			}
		case IsLineNumber(token):
			var v int
			if v, err = ParseLineNumber(token); err == nil {
				info.LineNumber = &v
			}
		case IsMachineSpeed(token):
			var v MachineSpeed
			if v, err = ParseMachineSpeed(token); err == nil {
				info.MachineSpeed = &v
			}
		case IsMachineSignal(token):
			var v []MachineSignal
			if v, err = ParseMachineSignals(token); err == nil {
				info.MachineSignals = v
			}
		case IsLocalOffset(token):
			var v MachinePosition
			if v, err = ParseLocalOffset(token); err == nil {
				info.LocalOffset = v
			}
		case IsCoordinateSystem(token):
			var v string
			if v, err = ParseCoordinateSystem(token); err == nil {
				info.MachineCoordinateSystem = &v
			}
		case IsOverrides(token):
			var v Overrides
			if v, err = ParseOverrides(token); err == nil {
				info.OverrideValues = &v
			}
		case IsAccessoryState(token):
			var v []AccessoryState
			if v, err = ParseAccessoryState(token); err == nil {
				info.AccessoryState = v
			}
		case IsPendantControl(token):
			var v PendantControl
			if v, err = ParsePendantControl(token); err == nil {
				info.PendantControl = &v
			}
		case IsHomingState(token):
			var v HomingState
			if v, err = ParseHomingState(token); err == nil {
				info.HomingState = &v
			}
		case IsArcMode(token):
			var v ArcMode
			if v, err = ParseArcMode(token); err == nil {
				info.ArcMode = &v
			}
		case IsScaledAxes(token):
			var v []grbl.Axis
			if v, err = ParseScaledAxes(token); err == nil {
				info.ScaledAxes = v
			}
		case IsToolLengthReference(token):
			var v bool
			if v, err = ParseToolLengthReference(token); err == nil {
				info.ToolLengthReferenceSet = &v
			}
		case IsFirmware(token):
			var v string
			if v, err = ParseFirmware(token); err == nil {
				info.Firmware = &v
			}
		case IsInputWaitResult(token):
			var v bool
			if v, err = ParseInputWaitResult(token); err == nil {
				info.InputWaitResult = &v
			}
		}
		if err != nil {
			return reportErr(err)
		}
	}
	return nil
}

// reportErr attributes a field failure to the report grammar.
func reportErr(err error) error {
	if perr, ok := err.(*grbl.Error); ok {
		return perr.WithScope("Report parsing failed")
	}
	return err
}
