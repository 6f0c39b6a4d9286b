package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const accessoryStatePrefix = "A:"

// AccessoryState is one active accessory, reported as a letter in the
// "A:" report field.
type AccessoryState int

const (
	SpindleClockwise AccessoryState = iota
	SpindleCounterClockwise
	FloodCoolantEnabled
	MistCoolantActive
	ToolChangePending
)

var accessoryStateLetters = map[string]AccessoryState{
	"S": SpindleClockwise,
	"C": SpindleCounterClockwise,
	"F": FloodCoolantEnabled,
	"M": MistCoolantActive,
	"T": ToolChangePending,
}

// IsAccessoryState reports whether token has the accessory-list shape.
func IsAccessoryState(token string) bool {
	return strings.HasPrefix(token, accessoryStatePrefix)
}

// ParseAccessoryState decodes "A:<letters>"; an unknown letter fails
// the whole token.
func ParseAccessoryState(token string) ([]AccessoryState, error) {
	if !IsAccessoryState(token) {
		return nil, grbl.ParseErr(grbl.MalformedGrammar, "accessory state", token)
	}
	var accessories []AccessoryState
	for _, tok := range grbl.SingleByteTokens(token[len(accessoryStatePrefix):]) {
		accessory, ok := accessoryStateLetters[tok]
		if !ok {
			return nil, grbl.ParseErr(grbl.UnknownEnumValue, "accessory state", tok)
		}
		accessories = append(accessories, accessory)
	}
	return accessories, nil
}
