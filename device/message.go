package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const (
	messagePrefix = "[MSG:"
	messageSuffix = "]"
	echoPrefix    = "[echo:"
	echoSuffix    = "]"
	helpPrefix    = "[HLP:"
	helpSuffix    = "]"
)

// Message is a free-form "[MSG:...]" line; the body is preserved
// byte-for-byte.
type Message struct {
	Message string
}

// IsMessageResponse reports whether line has the message shape.
func IsMessageResponse(line string) bool {
	return strings.HasPrefix(line, messagePrefix) && strings.HasSuffix(line, messageSuffix)
}

// ParseMessage decodes "[MSG:<body>]".
func ParseMessage(line string) (Message, error) {
	body, err := grbl.StripFix(line, messagePrefix, messageSuffix, "message")
	if err != nil {
		return Message{}, err
	}
	return Message{Message: body}, nil
}

// EchoMessage is an "[echo:...]" line, emitted when command echo is
// compiled in; the body is preserved byte-for-byte.
type EchoMessage struct {
	Echo string
}

// IsEchoResponse reports whether line has the echo shape.
func IsEchoResponse(line string) bool {
	return strings.HasPrefix(line, echoPrefix) && strings.HasSuffix(line, echoSuffix)
}

// ParseEchoMessage decodes "[echo:<body>]".
func ParseEchoMessage(line string) (EchoMessage, error) {
	body, err := grbl.StripFix(line, echoPrefix, echoSuffix, "echo")
	if err != nil {
		return EchoMessage{}, err
	}
	return EchoMessage{Echo: body}, nil
}

// Help is the command summary from a "[HLP:...]" line.
type Help struct {
	Values []string
}

// IsHelpResponse reports whether line has the help shape.
func IsHelpResponse(line string) bool {
	return strings.HasPrefix(line, helpPrefix) && strings.HasSuffix(line, helpSuffix)
}

// ParseHelp decodes "[HLP:<tokens>]"; tokens are space separated and
// empty tokens are dropped.
func ParseHelp(line string) (Help, error) {
	body, err := grbl.StripFix(line, helpPrefix, helpSuffix, "help message")
	if err != nil {
		return Help{}, err
	}
	return Help{Values: grbl.Fields(body, " ")}, nil
}
