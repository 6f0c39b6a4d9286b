package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

// The small single-value report fields.  Each follows the same
// pattern: a prefix predicate and a decoder that owns its value range.

const lineNumberPrefix = "Ln:"

// IsLineNumber reports whether token has the line-number shape.
func IsLineNumber(token string) bool {
	return strings.HasPrefix(token, lineNumberPrefix)
}

// ParseLineNumber decodes "Ln:<number>".
func ParseLineNumber(token string) (int, error) {
	if !IsLineNumber(token) {
		return 0, grbl.ParseErr(grbl.MalformedGrammar, "line number", token)
	}
	v, err := grbl.ParseIntField(token[len(lineNumberPrefix):], "line number", 32)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

const pendantControlPrefix = "MPG:"

// PendantControl is the claim state of an attached manual pulse
// generator.
type PendantControl int

const (
	PendantReleased PendantControl = iota
	PendantTaken
)

// IsPendantControl reports whether token has the pendant shape.
func IsPendantControl(token string) bool {
	return strings.HasPrefix(token, pendantControlPrefix)
}

// ParsePendantControl decodes "MPG:0" / "MPG:1".
func ParsePendantControl(token string) (PendantControl, error) {
	if !IsPendantControl(token) {
		return 0, grbl.ParseErr(grbl.MalformedGrammar, "pendant control", token)
	}
	body := token[len(pendantControlPrefix):]
	state, err := grbl.ParseIntField(body, "pendant control state", 8)
	if err != nil {
		return 0, err
	}
	switch state {
	case 0:
		return PendantReleased, nil
	case 1:
		return PendantTaken, nil
	}
	return 0, grbl.ParseErr(grbl.NumericOutOfRange, "pendant control state", body)
}

const homingStatePrefix = "H:"

// HomingState is the "H:" report field.  When the firmware omits the
// axis mask, HomedAxes lists all six axes; Homed still follows the
// reported 0/1 value.
type HomingState struct {
	Homed     bool
	HomedAxes []grbl.Axis
}

// IsHomingState reports whether token has the homing shape.
func IsHomingState(token string) bool {
	return strings.HasPrefix(token, homingStatePrefix)
}

// ParseHomingState decodes "H:<0|1>[,<axis mask>]".
func ParseHomingState(token string) (HomingState, error) {
	if !IsHomingState(token) {
		return HomingState{}, grbl.ParseErr(grbl.MalformedGrammar, "homing state", token)
	}
	values := grbl.SplitOn(token[len(homingStatePrefix):], ",")
	if len(values) > 2 {
		return HomingState{}, grbl.ParseErr(grbl.WrongFieldCount, "homing states", token)
	}

	completed, err := grbl.ParseIntField(values[0], "homing completion state", 8)
	if err != nil {
		return HomingState{}, err
	}
	if completed != 0 && completed != 1 {
		return HomingState{}, grbl.ParseErr(grbl.NumericOutOfRange, "homing completion state", values[0])
	}

	state := HomingState{Homed: completed == 1}
	if len(values) == 2 {
		mask, err := grbl.ParseIntField(values[1], "homed axes", 32)
		if err != nil {
			return HomingState{}, err
		}
		state.HomedAxes = grbl.AxesFromMask(int(mask))
	} else {
		// axes are only reported when homed in separate cycles
		state.HomedAxes = grbl.AllAxes()
	}
	return state, nil
}

const arcModePrefix = "D:"

// ArcMode is the lathe diameter/radius mode from the "D:" field.
type ArcMode int

const (
	ArcRadius ArcMode = iota
	ArcDiameter
)

// IsArcMode reports whether token has the arc-mode shape.
func IsArcMode(token string) bool {
	return strings.HasPrefix(token, arcModePrefix)
}

// ParseArcMode decodes "D:0" (radius) / "D:1" (diameter).
func ParseArcMode(token string) (ArcMode, error) {
	if !IsArcMode(token) {
		return 0, grbl.ParseErr(grbl.MalformedGrammar, "arc mode", token)
	}
	switch token[len(arcModePrefix):] {
	case "0":
		return ArcRadius, nil
	case "1":
		return ArcDiameter, nil
	}
	return 0, grbl.ParseErr(grbl.UnknownEnumValue, "arc mode", token[len(arcModePrefix):])
}

const toolLengthReferencePrefix = "TLR:"

// IsToolLengthReference reports whether token has the TLR shape.
func IsToolLengthReference(token string) bool {
	return strings.HasPrefix(token, toolLengthReferencePrefix)
}

// ParseToolLengthReference decodes "TLR:<i8>"; only the value 1 means
// the reference offset is set.
func ParseToolLengthReference(token string) (bool, error) {
	if !IsToolLengthReference(token) {
		return false, grbl.ParseErr(grbl.MalformedGrammar, "tool length reference", token)
	}
	v, err := grbl.ParseIntField(token[len(toolLengthReferencePrefix):], "tool length reference offset set", 8)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

const firmwarePrefix = "FW:"

// IsFirmware reports whether token has the firmware-tag shape.
func IsFirmware(token string) bool {
	return strings.HasPrefix(token, firmwarePrefix)
}

// ParseFirmware decodes "FW:<name>"; the name is preserved verbatim.
func ParseFirmware(token string) (string, error) {
	if !IsFirmware(token) {
		return "", grbl.ParseErr(grbl.MalformedGrammar, "firmware", token)
	}
	return token[len(firmwarePrefix):], nil
}

const inputWaitResultPrefix = "In:"

// IsInputWaitResult reports whether token has the input-wait shape.
func IsInputWaitResult(token string) bool {
	return strings.HasPrefix(token, inputWaitResultPrefix)
}

// ParseInputWaitResult decodes "In:<-1|0|1>".  -1 is a failed wait;
// 0 and 1 report the input level after a successful wait.
func ParseInputWaitResult(token string) (bool, error) {
	if !IsInputWaitResult(token) {
		return false, grbl.ParseErr(grbl.MalformedGrammar, "input wait result", token)
	}
	body := token[len(inputWaitResultPrefix):]
	v, err := grbl.ParseIntField(body, "input wait result", 8)
	if err != nil {
		return false, err
	}
	if v < -1 || v > 1 {
		return false, grbl.ParseErr(grbl.NumericOutOfRange, "input wait result", body)
	}
	return v >= 0, nil
}
