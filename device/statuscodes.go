package device

import (
	"sort"
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const (
	errorCodePrefix = "[ERRORCODE:"
	errorCodeSuffix = "]"
	alarmCodePrefix = "[ALARMCODE:"
	alarmCodeSuffix = "]"

	statusCodeDelimiter = "|"
)

// StatusCode is one entry of the firmware's error or alarm catalog.
type StatusCode struct {
	Code        uint16
	Description string
}

// StatusCodes is the per-device catalog of error and alarm code
// descriptions.  Entries are keyed by code and never deleted;
// re-decoding a code overwrites in place.
type StatusCodes struct {
	errorCodes map[uint16]StatusCode
	alarmCodes map[uint16]StatusCode
}

// NewStatusCodes returns an empty catalog.
func NewStatusCodes() *StatusCodes {
	return &StatusCodes{
		errorCodes: make(map[uint16]StatusCode),
		alarmCodes: make(map[uint16]StatusCode),
	}
}

// PutErrorCode stores the error code, overwriting any previous value.
func (sc *StatusCodes) PutErrorCode(code StatusCode) {
	sc.errorCodes[code.Code] = code
}

// PutAlarmCode stores the alarm code, overwriting any previous value.
func (sc *StatusCodes) PutAlarmCode(code StatusCode) {
	sc.alarmCodes[code.Code] = code
}

// GetErrorCode returns the error description for code, if present.
func (sc *StatusCodes) GetErrorCode(code uint16) (StatusCode, bool) {
	c, ok := sc.errorCodes[code]
	return c, ok
}

// GetAlarmCode returns the alarm description for code, if present.
func (sc *StatusCodes) GetAlarmCode(code uint16) (StatusCode, bool) {
	c, ok := sc.alarmCodes[code]
	return c, ok
}

// ErrorCodes returns the error catalog in ascending code order.
func (sc *StatusCodes) ErrorCodes() []StatusCode {
	return sortedCodes(sc.errorCodes)
}

// AlarmCodes returns the alarm catalog in ascending code order.
func (sc *StatusCodes) AlarmCodes() []StatusCode {
	return sortedCodes(sc.alarmCodes)
}

func sortedCodes(m map[uint16]StatusCode) []StatusCode {
	keys := make([]uint16, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]StatusCode, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

// clone copies the catalog for reader snapshots.
func (sc *StatusCodes) clone() *StatusCodes {
	out := NewStatusCodes()
	for k, v := range sc.errorCodes {
		out.errorCodes[k] = v
	}
	for k, v := range sc.alarmCodes {
		out.alarmCodes[k] = v
	}
	return out
}

// parseStatusCode decodes "<prefix><code>||<description><suffix>".
// The middle segment is empty by protocol.
func parseStatusCode(line, prefix, suffix, field string) (StatusCode, error) {
	body, err := grbl.StripFix(line, prefix, suffix, field)
	if err != nil {
		return StatusCode{}, err
	}
	segments := grbl.SplitOn(body, statusCodeDelimiter)
	if len(segments) != 3 {
		return StatusCode{}, grbl.ParseErr(grbl.WrongFieldCount, field+" fields", body)
	}
	code, err := grbl.ParseUintField(segments[0], field, 16)
	if err != nil {
		return StatusCode{}, err
	}
	return StatusCode{Code: uint16(code), Description: segments[2]}, nil
}

// IsErrorCodeResponse reports whether line has the error-code shape.
func IsErrorCodeResponse(line string) bool {
	return strings.HasPrefix(line, errorCodePrefix) && strings.HasSuffix(line, errorCodeSuffix)
}

// ParseErrorCode decodes "[ERRORCODE:<n>||<description>]".
func ParseErrorCode(line string) (StatusCode, error) {
	return parseStatusCode(line, errorCodePrefix, errorCodeSuffix, "error code")
}

// IsAlarmCodeResponse reports whether line has the alarm-code shape.
func IsAlarmCodeResponse(line string) bool {
	return strings.HasPrefix(line, alarmCodePrefix) && strings.HasSuffix(line, alarmCodeSuffix)
}

// ParseAlarmCode decodes "[ALARMCODE:<n>||<description>]".
func ParseAlarmCode(line string) (StatusCode, error) {
	return parseStatusCode(line, alarmCodePrefix, alarmCodeSuffix, "alarm code")
}
