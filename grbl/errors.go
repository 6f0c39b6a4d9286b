// Package grbl contains the protocol core shared by the response
// decoders and the transport layer: the structured error type, the
// grammar primitives the line parsers are built from, the axis and
// signal-mask tables, and the outbound command catalog of the
// grbl / grblHAL ASCII dialect.
package grbl

import "fmt"

// Kind classifies a protocol or transport failure.
type Kind int

// All failure classes surfaced by this module.
const (
	UnknownFormat Kind = iota
	MalformedGrammar
	NumericOutOfRange
	WrongFieldCount
	UnknownEnumValue
	TransportOpen
	TransportWrite
	TransportRead
	EndpointBusy
	AlreadyOpen
	NotOpen
	DuplicateDeviceID
	UnknownDevice
)

// Error is the structured failure type shared by the decoders and the
// transport layer.  Field, Value and Line hold diagnostic context
// verbatim; any of them may be empty depending on the Kind.  Scope,
// when set, names the enclosing grammar a sub-decoder failed inside.
type Error struct {
	Kind  Kind
	Field string
	Value string
	Line  string
	Scope string
	Err   error
}

func (e *Error) Error() string {
	if e.Scope != "" {
		return e.Scope + ": " + e.message()
	}
	return e.message()
}

func (e *Error) message() string {
	switch e.Kind {
	case UnknownFormat:
		return fmt.Sprintf("unknown response format %q", e.Line)
	case NumericOutOfRange:
		return fmt.Sprintf("%s out of range %q", e.Field, e.Value)
	case WrongFieldCount:
		return fmt.Sprintf("invalid count of %s %q", e.Field, e.Value)
	case UnknownEnumValue:
		return fmt.Sprintf("unknown %s %q", e.Field, e.Value)
	case TransportOpen:
		return fmt.Sprintf("cannot open %q: %v", e.Field, e.Err)
	case TransportWrite:
		return fmt.Sprintf("cannot write %q to %q: %v", e.Value, e.Field, e.Err)
	case TransportRead:
		return fmt.Sprintf("cannot read from %q: %v", e.Field, e.Err)
	case EndpointBusy:
		return fmt.Sprintf("write queue full for %q", e.Field)
	case AlreadyOpen:
		return fmt.Sprintf("%q is already open", e.Field)
	case NotOpen:
		return fmt.Sprintf("%q is not open", e.Field)
	case DuplicateDeviceID:
		return fmt.Sprintf("device %q is already connected", e.Value)
	case UnknownDevice:
		return fmt.Sprintf("device %q not found", e.Value)
	}
	return fmt.Sprintf("cannot read %s %q", e.Field, e.Value)
}

// WithScope returns a copy of the error attributed to the enclosing
// grammar named by scope.
func (e *Error) WithScope(scope string) *Error {
	wrapped := *e
	wrapped.Scope = scope
	return &wrapped
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error { return e.Err }

// ParseErr builds a decoder failure for the named field with the
// offending substring captured verbatim.
func ParseErr(kind Kind, field, value string) *Error {
	return &Error{Kind: kind, Field: field, Value: value}
}
