// Package cutter compiles a selection list and mode into a reusable line
// extractor for callers that describe the selection as plain strings, such
// as the NDJSON server and the WebAssembly binding.
package cutter

import (
	"fmt"

	"github.com/praetorian-inc/snip/pkg/extract"
	"github.com/praetorian-inc/snip/pkg/selection"
)

// Options describes a selection.
type Options struct {
	// List is the selection list, e.g. "1,3-5".
	List string `json:"list"`

	// Mode is "fields", "bytes" or "chars" (default "fields").
	Mode string `json:"mode"`

	// Delimiter is the single-byte field delimiter (default tab).
	Delimiter string `json:"delimiter,omitempty"`

	// OutputDelimiter joins selected fields instead of Delimiter.
	OutputDelimiter string `json:"output_delimiter,omitempty"`

	// OnlyDelimited drops lines without a delimiter in fields mode.
	OnlyDelimited bool `json:"only_delimited,omitempty"`
}

// Result holds the extracted lines of one Cut call.
type Result struct {
	Lines      []string `json:"lines"`
	Suppressed int      `json:"suppressed"`
}

// Core is a compiled selection. It is immutable and safe for concurrent use.
type Core struct {
	extractor *extract.Extractor
}

// New parses opts.List once and builds the extractor.
func New(opts Options) (*Core, error) {
	kind := extract.Fields
	if opts.Mode != "" {
		var err error
		if kind, err = extract.ParseKind(opts.Mode); err != nil {
			return nil, err
		}
	}

	delim := extract.DefaultDelimiter
	if opts.Delimiter != "" {
		var err error
		if delim, err = extract.ParseDelimiter(opts.Delimiter); err != nil {
			return nil, err
		}
	}

	ranges, err := selection.Parse(opts.List)
	if err != nil {
		return nil, err
	}

	return &Core{
		extractor: &extract.Extractor{
			Mode:            extract.NewMode(kind, delim),
			Ranges:          ranges,
			OutputDelimiter: opts.OutputDelimiter,
			OnlyDelimited:   opts.OnlyDelimited,
		},
	}, nil
}

// MustNew is like New but panics on error. Intended for fixed selections.
func MustNew(opts Options) *Core {
	c, err := New(opts)
	if err != nil {
		panic(fmt.Sprintf("cutter: %v", err))
	}
	return c
}

// Ranges returns the parsed selection.
func (c *Core) Ranges() selection.List {
	return c.extractor.Ranges
}

// Extractor returns the underlying extractor.
func (c *Core) Extractor() *extract.Extractor {
	return c.extractor
}

// Cut extracts from each line. Suppressed lines are left out of the result.
func (c *Core) Cut(lines []string) Result {
	res := Result{Lines: make([]string, 0, len(lines))}
	for _, line := range lines {
		out, ok := c.extractor.Line(line)
		if !ok {
			res.Suppressed++
			continue
		}
		res.Lines = append(res.Lines, out)
	}
	return res
}
