package grbl

import (
	"strconv"
	"strings"
)

// The decoders never trim: the transport hands them exactly one framed
// line and every byte is significant.  Helpers here fail with the field
// name and the offending substring captured verbatim.

// StripFix returns the slice of line between prefix and suffix, or a
// MalformedGrammar error naming field when the line has the wrong shape.
func StripFix(line, prefix, suffix, field string) (string, error) {
	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, suffix) {
		return "", ParseErr(MalformedGrammar, field, line)
	}
	return line[len(prefix) : len(line)-len(suffix)], nil
}

// StripFixNonEmpty is StripFix for grammars whose body must not be
// empty (board and driver identity lines).
func StripFixNonEmpty(line, prefix, suffix, field string) (string, error) {
	body, err := StripFix(line, prefix, suffix, field)
	if err != nil {
		return "", err
	}
	if body == "" {
		return "", ParseErr(MalformedGrammar, field, "")
	}
	return body, nil
}

// ParseIntField parses a signed integer token of the given bit size.
// A syntax failure is MalformedGrammar; a range failure is
// NumericOutOfRange.
func ParseIntField(tok, field string, bitSize int) (int64, error) {
	v, err := strconv.ParseInt(tok, 10, bitSize)
	if err != nil {
		return 0, numErr(err, field, tok)
	}
	return v, nil
}

// ParseUintField parses an unsigned integer token of the given bit size.
func ParseUintField(tok, field string, bitSize int) (uint64, error) {
	v, err := strconv.ParseUint(tok, 10, bitSize)
	if err != nil {
		return 0, numErr(err, field, tok)
	}
	return v, nil
}

// ParseFloatField parses a float token.
func ParseFloatField(tok, field string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, numErr(err, field, tok)
	}
	return v, nil
}

func numErr(err error, field, tok string) *Error {
	kind := MalformedGrammar
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		kind = NumericOutOfRange
	}
	return ParseErr(kind, field, tok)
}

// SplitOn splits s by delim.  A thin wrapper kept so the decoders read
// uniformly against the other primitives.
func SplitOn(s, delim string) []string {
	return strings.Split(s, delim)
}

// Fields splits s by delim and drops empty tokens.
func Fields(s, delim string) []string {
	parts := strings.Split(s, delim)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SingleByteTokens walks the raw bytes of s and yields each as a
// one-character token.  Flag and letter lists on the wire are plain
// ASCII, so byte granularity is the correct unit.
func SingleByteTokens(s string) []string {
	toks := make([]string, 0, len(s))
	for i := 0; i < len(s); i++ {
		toks = append(toks, s[i:i+1])
	}
	return toks
}
