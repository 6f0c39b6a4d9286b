package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const startupPrefix = ">"

// FirmwareStartupResult is the outcome of one stored startup line,
// reported as ">line:status[:code]".
type FirmwareStartupResult struct {
	ExecutedLine string
	Ok           bool

	// ErrorCode is meaningful only when Ok is false.  It is -1 when the
	// firmware omitted the code or sent one that does not parse.
	ErrorCode int
}

// IsStartupResponse reports whether line has the startup-result prefix.
func IsStartupResponse(line string) bool {
	return strings.HasPrefix(line, startupPrefix)
}

// ParseStartupResult decodes ">line:status[:code]".
func ParseStartupResult(line string) (FirmwareStartupResult, error) {
	if !IsStartupResponse(line) {
		return FirmwareStartupResult{}, grbl.ParseErr(grbl.MalformedGrammar, "startup", line)
	}
	body := strings.TrimPrefix(line, startupPrefix)
	segments := grbl.SplitOn(body, ":")
	if len(segments) < 2 {
		return FirmwareStartupResult{}, grbl.ParseErr(grbl.WrongFieldCount, "startup segments", body)
	}

	code := -1
	if len(segments) >= 3 {
		if v, err := grbl.ParseIntField(segments[2], "startup code", 32); err == nil {
			code = int(v)
		}
	}

	result := FirmwareStartupResult{ExecutedLine: segments[0], ErrorCode: code}
	switch segments[1] {
	case "ok":
		result.Ok = true
		result.ErrorCode = 0
	case "error":
	default:
		return FirmwareStartupResult{}, grbl.ParseErr(grbl.UnknownEnumValue, "startup result", segments[1])
	}
	return result, nil
}
