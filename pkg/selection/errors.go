package selection

import (
	"errors"
	"fmt"
)

// Kind classifies a selection list failure.
type Kind int

const (
	// InvalidSyntax marks a token that is not INDEX or INDEX-INDEX, including
	// an empty token.
	InvalidSyntax Kind = iota + 1
	// InvalidIndex marks a zero index, a signed index, or one too large to
	// represent.
	InvalidIndex
	// InvalidRange marks a pair whose first index is greater than its second.
	InvalidRange
)

func (k Kind) String() string {
	switch k {
	case InvalidSyntax:
		return "invalid_syntax"
	case InvalidIndex:
		return "invalid_index"
	case InvalidRange:
		return "invalid_range"
	default:
		return "unknown"
	}
}

// ParseError reports a malformed selection list.
type ParseError struct {
	Kind Kind
	// Token is the offending fragment of the list.
	Token string
	// First and Second hold the endpoints of an InvalidRange pair.
	First  int
	Second int
}

func (e *ParseError) Error() string {
	if e.Kind == InvalidRange {
		return fmt.Sprintf("First number in range (%d) must be lower than second number (%d)", e.First, e.Second)
	}
	return fmt.Sprintf("illegal list value: %q", e.Token)
}

// IsKind reports whether err is a *ParseError of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}
