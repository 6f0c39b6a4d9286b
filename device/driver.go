package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const (
	driverNamePrefix    = "[DRIVER:"
	driverNameSuffix    = "]"
	driverVersionPrefix = "[DRIVER VERSION:"
	driverVersionSuffix = "]"
	driverOptionsPrefix = "[DRIVER OPTIONS:"
	driverOptionsSuffix = "]"
)

// DriverInfo is the HAL driver identity of a grblHAL build.
type DriverInfo struct {
	Name    string
	Version string
	Options []string
}

// IsDriverNameResponse reports whether line has the driver-name shape.
func IsDriverNameResponse(line string) bool {
	return strings.HasPrefix(line, driverNamePrefix) && strings.HasSuffix(line, driverNameSuffix)
}

// ParseDriverName decodes "[DRIVER:<name>]"; the name must be non-empty.
func ParseDriverName(line string) (string, error) {
	return grbl.StripFixNonEmpty(line, driverNamePrefix, driverNameSuffix, "driver name")
}

// IsDriverVersionResponse reports whether line has the driver-version
// shape.
func IsDriverVersionResponse(line string) bool {
	return strings.HasPrefix(line, driverVersionPrefix) && strings.HasSuffix(line, driverVersionSuffix)
}

// ParseDriverVersion decodes "[DRIVER VERSION:<version>]".
func ParseDriverVersion(line string) (string, error) {
	return grbl.StripFixNonEmpty(line, driverVersionPrefix, driverVersionSuffix, "driver version")
}

// IsDriverOptionsResponse reports whether line has the driver-options
// shape.
func IsDriverOptionsResponse(line string) bool {
	return strings.HasPrefix(line, driverOptionsPrefix) && strings.HasSuffix(line, driverOptionsSuffix)
}

// ParseDriverOptions decodes "[DRIVER OPTIONS:<csv>]", dropping empty
// tokens.
func ParseDriverOptions(line string) ([]string, error) {
	body, err := grbl.StripFixNonEmpty(line, driverOptionsPrefix, driverOptionsSuffix, "driver options")
	if err != nil {
		return nil, err
	}
	return grbl.Fields(body, ","), nil
}
