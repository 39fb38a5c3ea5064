package extract

import (
	"fmt"
	"strings"
)

// Kind is the unit of extraction.
type Kind int

const (
	// Fields selects delimiter-separated fields.
	Fields Kind = iota
	// Bytes selects raw bytes.
	Bytes
	// Chars selects Unicode scalar values.
	Chars
)

func (k Kind) String() string {
	switch k {
	case Fields:
		return "fields"
	case Bytes:
		return "bytes"
	case Chars:
		return "chars"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves a mode name. Single-letter forms match the short flags.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fields", "f":
		return Fields, nil
	case "bytes", "b":
		return Bytes, nil
	case "chars", "c":
		return Chars, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want fields, bytes, or chars)", name)
	}
}

// DefaultDelimiter separates fields when none is configured.
const DefaultDelimiter byte = '\t'

// Mode is the selection mode for one run. The zero value is fields mode
// split on a NUL byte; build modes with FieldsMode, BytesMode or CharsMode.
type Mode struct {
	kind      Kind
	delimiter byte
}

// FieldsMode returns a mode selecting fields separated by delim.
func FieldsMode(delim byte) Mode {
	return Mode{kind: Fields, delimiter: delim}
}

// BytesMode returns a mode selecting raw bytes.
func BytesMode() Mode {
	return Mode{kind: Bytes}
}

// CharsMode returns a mode selecting Unicode scalar values.
func CharsMode() Mode {
	return Mode{kind: Chars}
}

// NewMode builds the mode for kind. delim is only used by Fields.
func NewMode(kind Kind, delim byte) Mode {
	switch kind {
	case Bytes:
		return BytesMode()
	case Chars:
		return CharsMode()
	default:
		return FieldsMode(delim)
	}
}

// Kind returns the unit of extraction.
func (m Mode) Kind() Kind { return m.kind }

// Delimiter returns the field delimiter. It is zero outside fields mode.
func (m Mode) Delimiter() byte { return m.delimiter }

func (m Mode) String() string {
	if m.kind == Fields {
		return fmt.Sprintf("fields(%q)", m.delimiter)
	}
	return m.kind.String()
}

// ParseDelimiter validates a delimiter given on the command line. It must be
// exactly one byte; the two-character escape `\t` is accepted for tab.
func ParseDelimiter(s string) (byte, error) {
	if s == `\t` {
		return '\t', nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("--delimiter %q must be a single byte", s)
	}
	return s[0], nil
}
