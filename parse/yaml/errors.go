package yaml

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// maximum length of a value quoted in an error message
const maxErrValueLen = 40

var (
	ErrMultipleDocuments = errors.New("expected a single YAML document")
	ErrExcessiveAliasing = errors.New("document contains excessive aliasing")
)

// ParseError is a structural error in scalar text. It aborts the enclosing
// document.
type ParseError struct {
	Kind   string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s value '%s': %s", e.Kind, e.Value, e.Reason)
}

func parseErr(kind, value, reason string) error {
	return &ParseError{Kind: kind, Value: value, Reason: reason}
}

// TagError reports an explicit tag with no decoder.
type TagError struct {
	Tag string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("don't know how to parse scalar tag '%s'", e.Tag)
}

// EmitError is an encoding failure. Preview holds at most maxErrValueLen
// bytes (hex) or runes (text) of the offending value.
type EmitError struct {
	Tag     string
	Reason  string
	Preview string
}

func (e *EmitError) Error() string {
	if e.Preview == "" {
		return fmt.Sprintf("cannot emit YAML scalar for type '%s': %s", e.Tag, e.Reason)
	}
	return fmt.Sprintf("cannot emit YAML scalar for type '%s': %s: '%s'", e.Tag, e.Reason, e.Preview)
}

func emitErr(tag, reason string, value []byte) error {
	return &EmitError{Tag: tag, Reason: reason, Preview: previewValue(value)}
}

// previewValue bounds a value for inclusion in an error. Invalid UTF-8 is
// rendered as hex inside angle brackets.
func previewValue(b []byte) string {
	if !utf8.Valid(b) {
		n := min(len(b), maxErrValueLen)
		s := "<" + hex.EncodeToString(b[:n])
		if n != len(b) {
			s += "..."
		}
		return s + ">"
	}
	if utf8.RuneCount(b) <= maxErrValueLen {
		return string(b)
	}
	cut, runes := 0, 0
	for cut < len(b) && runes < maxErrValueLen {
		_, size := utf8.DecodeRune(b[cut:])
		cut += size
		runes++
	}
	return string(b[:cut]) + "..."
}
