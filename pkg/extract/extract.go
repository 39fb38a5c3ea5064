// Package extract applies parsed selection ranges to single lines of input.
//
// Extraction never fails: a range that reaches past the end of a line is
// clamped, and a range that starts past the end contributes nothing. Ranges
// are applied in declaration order, so overlapping or repeated ranges repeat
// their output.
package extract

import (
	"strings"

	"github.com/praetorian-inc/snip/pkg/selection"
)

// Extract returns the parts of line selected by ranges under mode.
//
// In bytes and chars mode the selected slices are concatenated without a
// separator. In fields mode the line is split on every delimiter byte and
// the selected fields are joined with the delimiter. A range with a negative
// start or an end not after its start selects nothing.
func Extract(line string, ranges selection.List, mode Mode) string {
	switch mode.kind {
	case Bytes:
		return extractBytes(line, ranges)
	case Chars:
		return extractChars(line, ranges)
	default:
		delim := string([]byte{mode.delimiter})
		return strings.Join(selectFields(line, ranges, delim), delim)
	}
}

// clamp bounds r to a sequence of length n. ok is false when r starts at or
// past the end, or when r is not a well-formed range (negative start, or
// end not after start).
func clamp(r selection.Range, n int) (start, end int, ok bool) {
	if r.Start < 0 || r.Start >= r.End || r.Start >= n {
		return 0, 0, false
	}
	return r.Start, min(r.End, n), true
}

func extractBytes(line string, ranges selection.List) string {
	var b strings.Builder
	for _, r := range ranges {
		if s, e, ok := clamp(r, len(line)); ok {
			b.WriteString(line[s:e])
		}
	}
	return b.String()
}

func extractChars(line string, ranges selection.List) string {
	runes := []rune(line)
	var b strings.Builder
	for _, r := range ranges {
		if s, e, ok := clamp(r, len(runes)); ok {
			b.WriteString(string(runes[s:e]))
		}
	}
	return b.String()
}

func selectFields(line string, ranges selection.List, delim string) []string {
	fields := strings.Split(line, delim)
	var out []string
	for _, r := range ranges {
		if s, e, ok := clamp(r, len(fields)); ok {
			out = append(out, fields[s:e]...)
		}
	}
	return out
}

// Extractor carries a compiled selection plus the output options of the
// command line tool. It is read-only after construction and safe for
// concurrent use.
type Extractor struct {
	Mode   Mode
	Ranges selection.List

	// OutputDelimiter joins selected fields instead of the input delimiter.
	// Fields mode only.
	OutputDelimiter string

	// OnlyDelimited suppresses lines that contain no delimiter. Fields mode
	// only.
	OnlyDelimited bool
}

// Line extracts from one line. The boolean is false when the line is
// suppressed by OnlyDelimited.
func (x *Extractor) Line(line string) (string, bool) {
	if x.Mode.kind != Fields {
		return Extract(line, x.Ranges, x.Mode), true
	}

	delim := string([]byte{x.Mode.delimiter})
	if x.OnlyDelimited && !strings.Contains(line, delim) {
		return "", false
	}
	sep := delim
	if x.OutputDelimiter != "" {
		sep = x.OutputDelimiter
	}
	return strings.Join(selectFields(line, x.Ranges, delim), sep), true
}
