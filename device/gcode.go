package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const (
	gcodeStatePrefix = "[GC:"
	gcodeStateSuffix = "]"
)

// GCodeState is the modal parser state from a "[GC:...]" line, kept as
// the raw token sequence.  Interpreting the tokens is gcode semantics
// and out of this package's reach.
type GCodeState struct {
	Values []string
}

// IsGCodeStateResponse reports whether line has the parser-state shape.
func IsGCodeStateResponse(line string) bool {
	return strings.HasPrefix(line, gcodeStatePrefix) && strings.HasSuffix(line, gcodeStateSuffix)
}

// ParseGCodeState decodes "[GC:<tokens>]"; tokens are space separated
// and empty tokens are dropped.
func ParseGCodeState(line string) (GCodeState, error) {
	body, err := grbl.StripFix(line, gcodeStatePrefix, gcodeStateSuffix, "gcode state message")
	if err != nil {
		return GCodeState{}, err
	}
	return GCodeState{Values: grbl.Fields(body, " ")}, nil
}
