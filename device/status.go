package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

// IsResponseStatus reports whether line is a command acknowledgement:
// "ok" or "error:<n>".
func IsResponseStatus(line string) bool {
	return line == "ok" || strings.HasPrefix(line, "error")
}

// ParseResponseStatus decodes a command acknowledgement.  The second
// return distinguishes a malformed line from a well-formed error
// acknowledgement: for "ok" it yields (0, nil), for "error:<n>"
// (n, nil), and a *grbl.Error otherwise.
func ParseResponseStatus(line string) (int, error) {
	if !IsResponseStatus(line) {
		return 0, grbl.ParseErr(grbl.MalformedGrammar, "response status", line)
	}
	segments := grbl.SplitOn(line, ":")
	if segments[0] == "ok" {
		return 0, nil
	}
	if segments[0] == "error" && len(segments) >= 2 {
		code, err := grbl.ParseIntField(segments[1], "response status code", 32)
		if err != nil {
			return 0, err
		}
		return int(code), nil
	}
	return 0, grbl.ParseErr(grbl.MalformedGrammar, "response status", line)
}
