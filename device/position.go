package device

import (
	"strconv"
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const (
	localPositionPrefix  = "WPos:"
	globalPositionPrefix = "MPos:"
	localOffsetPrefix    = "WCO:"
	coordSystemPrefix    = "WCS:"
	scaledAxesPrefix     = "Sc:"
)

// MachinePosition is an ordered sequence of 1..6 axis values, in the
// firmware's X,Y,Z,A,B,C order.
type MachinePosition []float64

// parsePosition decodes a bare "<float>,<float>,..." axis list.
func parsePosition(csv string) (MachinePosition, error) {
	axisStrings := grbl.SplitOn(csv, ",")
	if len(axisStrings) < grbl.MinAxes || len(axisStrings) > grbl.MaxAxes {
		return nil, grbl.ParseErr(grbl.WrongFieldCount, "axis values", csv)
	}
	position := make(MachinePosition, 0, len(axisStrings))
	for i, axisString := range axisStrings {
		v, err := grbl.ParseFloatField(axisString, "axis:"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		position = append(position, v)
	}
	return position, nil
}

// IsLocalPosition reports whether token is a work position ("WPos:").
func IsLocalPosition(token string) bool {
	return strings.HasPrefix(token, localPositionPrefix)
}

// ParseLocalPosition decodes "WPos:<csv floats>".
func ParseLocalPosition(token string) (MachinePosition, error) {
	if !IsLocalPosition(token) {
		return nil, grbl.ParseErr(grbl.MalformedGrammar, "local position", token)
	}
	return parsePosition(token[len(localPositionPrefix):])
}

// IsGlobalPosition reports whether token is a machine position
// ("MPos:").
func IsGlobalPosition(token string) bool {
	return strings.HasPrefix(token, globalPositionPrefix)
}

// ParseGlobalPosition decodes "MPos:<csv floats>".
func ParseGlobalPosition(token string) (MachinePosition, error) {
	if !IsGlobalPosition(token) {
		return nil, grbl.ParseErr(grbl.MalformedGrammar, "global position", token)
	}
	return parsePosition(token[len(globalPositionPrefix):])
}

// IsLocalOffset reports whether token is a work coordinate offset
// ("WCO:").
func IsLocalOffset(token string) bool {
	return strings.HasPrefix(token, localOffsetPrefix)
}

// ParseLocalOffset decodes "WCO:<csv floats>".
func ParseLocalOffset(token string) (MachinePosition, error) {
	if !IsLocalOffset(token) {
		return nil, grbl.ParseErr(grbl.MalformedGrammar, "local position offset", token)
	}
	return parsePosition(token[len(localOffsetPrefix):])
}

// IsCoordinateSystem reports whether token is a work coordinate system
// ("WCS:").
func IsCoordinateSystem(token string) bool {
	return strings.HasPrefix(token, coordSystemPrefix)
}

// ParseCoordinateSystem decodes "WCS:G..".  Anything not starting with
// "G" is not a coordinate system the firmware can mean.
func ParseCoordinateSystem(token string) (string, error) {
	if !IsCoordinateSystem(token) {
		return "", grbl.ParseErr(grbl.MalformedGrammar, "coordinate system", token)
	}
	system := token[len(coordSystemPrefix):]
	if !strings.HasPrefix(system, "G") {
		return "", grbl.ParseErr(grbl.MalformedGrammar, "coordinate system", system)
	}
	return system, nil
}

// IsScaledAxes reports whether token is a scaled-axes list ("Sc:").
func IsScaledAxes(token string) bool {
	return strings.HasPrefix(token, scaledAxesPrefix)
}

// ParseScaledAxes decodes "Sc:<axis letters>"; an unknown letter fails
// the whole token.
func ParseScaledAxes(token string) ([]grbl.Axis, error) {
	if !IsScaledAxes(token) {
		return nil, grbl.ParseErr(grbl.MalformedGrammar, "scaled axes", token)
	}
	var axes []grbl.Axis
	for _, tok := range grbl.SingleByteTokens(token[len(scaledAxesPrefix):]) {
		axis, err := grbl.ParseAxis(tok)
		if err != nil {
			return nil, grbl.ParseErr(grbl.UnknownEnumValue, "scaled axis", tok)
		}
		axes = append(axes, axis)
	}
	return axes, nil
}
