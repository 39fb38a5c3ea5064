// Package selection parses selection lists such as "1,3,5-7" into ordered
// half-open index ranges.
//
// Positions in a selection list are 1-based; the ranges produced are 0-based
// and half-open, so the token "3-5" becomes [2, 5). Ranges keep the order in
// which they were declared and are never sorted or merged, which lets a list
// like "2,1,1" select the same position more than once.
package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a half-open interval [Start, End) over 0-based positions.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of positions covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// List is an ordered list of ranges, in declaration order.
type List []Range

func (l List) String() string {
	parts := make([]string, len(l))
	for i, r := range l {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}

// Parse turns a selection list into ranges.
//
// The grammar is a comma-separated list of tokens, each either a positive
// decimal index n or an inclusive pair a-b with a <= b:
//
//	list  := token (',' token)*
//	token := INDEX | INDEX '-' INDEX
//	INDEX := digit+
//
// Leading zeros are accepted ("01" is 1). Zero and a leading '+' are rejected
// with InvalidIndex, reversed pairs with InvalidRange, and everything else that
// does not fit the grammar (including empty tokens) with InvalidSyntax.
func Parse(list string) (List, error) {
	tokens := strings.Split(list, ",")
	ranges := make(List, 0, len(tokens))
	for _, tok := range tokens {
		r, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func parseToken(tok string) (Range, error) {
	lo, hi, isPair := strings.Cut(tok, "-")
	if !isPair {
		n, err := parseIndex(tok, tok)
		if err != nil {
			return Range{}, err
		}
		return Range{Start: n - 1, End: n}, nil
	}

	if lo == "" || hi == "" || strings.Contains(hi, "-") {
		return Range{}, &ParseError{Kind: InvalidSyntax, Token: tok}
	}
	a, err := parseIndex(lo, tok)
	if err != nil {
		return Range{}, err
	}
	b, err := parseIndex(hi, tok)
	if err != nil {
		return Range{}, err
	}
	if a > b {
		return Range{}, &ParseError{Kind: InvalidRange, Token: tok, First: a, Second: b}
	}
	return Range{Start: a - 1, End: b}, nil
}

// parseIndex parses one 1-based index. tok is the enclosing token, reported
// for failures that concern the token's shape rather than its value.
func parseIndex(s, tok string) (int, error) {
	if strings.HasPrefix(s, "+") {
		return 0, &ParseError{Kind: InvalidIndex, Token: tok}
	}
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, &ParseError{Kind: InvalidSyntax, Token: tok}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Only overflow is possible here; the digits were checked above.
		return 0, &ParseError{Kind: InvalidIndex, Token: tok}
	}
	if n == 0 {
		return 0, &ParseError{Kind: InvalidIndex, Token: s}
	}
	return n, nil
}
