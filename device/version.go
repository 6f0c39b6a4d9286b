// Package device implements the response decoders for the grbl /
// grblHAL line protocol and the per-device state model they update.
//
// Every decoder exposes a pure shape predicate (IsXxx) and a
// parse function that either returns a fully populated value or a
// *grbl.Error; a failed parse never leaves a partial result behind.
// The top-level entry point is ReadResponse, which tag-dispatches one
// framed line into the matching decoder family and merges the result
// into a DeviceInfo.
package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const (
	versionPrefix = "[VER:"
	versionSuffix = "]"
)

// FirmwareVersion is the controller identity from a "[VER:...]" line.
type FirmwareVersion struct {
	Version string
	Name    string
}

// IsVersionResponse reports whether line has the version shape.
func IsVersionResponse(line string) bool {
	return strings.HasPrefix(line, versionPrefix) && strings.HasSuffix(line, versionSuffix)
}

// ParseVersion decodes "[VER:<version>:<name>]".  The name may itself
// contain colons and may be empty; the version segment may not be
// missing.
func ParseVersion(line string) (FirmwareVersion, error) {
	body, err := grbl.StripFix(line, versionPrefix, versionSuffix, "version")
	if err != nil {
		return FirmwareVersion{}, err
	}
	segments := grbl.SplitOn(body, ":")
	if len(segments) < 2 {
		return FirmwareVersion{}, grbl.ParseErr(grbl.WrongFieldCount, "version strings", body)
	}
	return FirmwareVersion{
		Version: segments[0],
		Name:    strings.Join(segments[1:], ":"),
	}, nil
}
