// Package snip extracts fields, bytes, or characters from lines of text.
//
// A selection list such as "1,3-5" is parsed once into half-open ranges and
// then applied to every line. Ranges keep their declared order and may
// overlap, so "2,1,1" prints the second field followed by the first one
// twice.
//
// # Basic Usage
//
//	ranges, err := snip.Parse("1,3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(snip.Extract("a:b:c", ranges, snip.Fields(':'))) // a:c
//
// # Streaming
//
//	cutter, err := snip.New("2-3", snip.Chars(), snip.WithNormalization(snip.NFC))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cutter.Cut(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package snip

import (
	"bufio"
	"context"
	"io"

	"github.com/praetorian-inc/snip/pkg/extract"
	"github.com/praetorian-inc/snip/pkg/runner"
	"github.com/praetorian-inc/snip/pkg/selection"
	"github.com/praetorian-inc/snip/pkg/textenc"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/snip" without subpackages.
type (
	// Range is a half-open interval [Start, End) over 0-based positions.
	Range = selection.Range

	// List is an ordered list of ranges.
	List = selection.List

	// ParseError reports a malformed selection list.
	ParseError = selection.ParseError

	// Mode is the unit of extraction: fields, bytes, or chars.
	Mode = extract.Mode

	// Form is a Unicode normalization form.
	Form = textenc.Form
)

// Re-export normalization forms.
const (
	NFC  = textenc.NFC
	NFD  = textenc.NFD
	NFKC = textenc.NFKC
	NFKD = textenc.NFKD
)

// Fields selects fields separated by delim.
func Fields(delim byte) Mode { return extract.FieldsMode(delim) }

// Bytes selects raw bytes.
func Bytes() Mode { return extract.BytesMode() }

// Chars selects Unicode scalar values.
func Chars() Mode { return extract.CharsMode() }

// Parse parses a selection list into ranges. See selection.Parse.
func Parse(list string) (List, error) {
	return selection.Parse(list)
}

// Extract applies ranges to one line. It never fails; out-of-range
// selections contribute nothing.
func Extract(line string, ranges List, mode Mode) string {
	return extract.Extract(line, ranges, mode)
}

// Cutter applies one parsed selection to many lines.
type Cutter struct {
	extractor *extract.Extractor
	config    *cutterConfig
}

type cutterConfig struct {
	outputDelimiter string
	onlyDelimited   bool
	normalize       textenc.Form
	encoding        string
}

// Option configures a Cutter.
type Option func(*cutterConfig)

// WithOutputDelimiter joins selected fields with sep instead of the input
// delimiter.
func WithOutputDelimiter(sep string) Option {
	return func(c *cutterConfig) {
		c.outputDelimiter = sep
	}
}

// WithOnlyDelimited drops lines that contain no delimiter (fields mode).
func WithOnlyDelimited() Option {
	return func(c *cutterConfig) {
		c.onlyDelimited = true
	}
}

// WithNormalization normalizes each line before extraction.
func WithNormalization(form Form) Option {
	return func(c *cutterConfig) {
		c.normalize = form
	}
}

// WithEncoding decodes input from the named charset before extraction.
func WithEncoding(name string) Option {
	return func(c *cutterConfig) {
		c.encoding = name
	}
}

// New parses list and returns a Cutter for mode.
func New(list string, mode Mode, opts ...Option) (*Cutter, error) {
	config := &cutterConfig{}
	for _, opt := range opts {
		opt(config)
	}

	ranges, err := selection.Parse(list)
	if err != nil {
		return nil, err
	}
	if err := textenc.Validate(config.encoding); err != nil {
		return nil, err
	}

	return &Cutter{
		extractor: &extract.Extractor{
			Mode:            mode,
			Ranges:          ranges,
			OutputDelimiter: config.outputDelimiter,
			OnlyDelimited:   config.onlyDelimited,
		},
		config: config,
	}, nil
}

// Ranges returns the parsed selection.
func (c *Cutter) Ranges() List {
	return c.extractor.Ranges
}

// Line extracts from one line. The boolean is false when the line is
// suppressed by WithOnlyDelimited.
func (c *Cutter) Line(line string) (string, bool) {
	return c.extractor.Line(c.config.normalize.Apply(line))
}

// Cut reads lines from r and writes the extracted lines to w.
func (c *Cutter) Cut(ctx context.Context, r io.Reader, w io.Writer) error {
	run, err := runner.New(runner.Config{
		Extractor: c.extractor,
		Encoding:  c.config.encoding,
		Normalize: c.config.normalize,
	})
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := run.Cut(ctx, "input", r, bw); err != nil {
		return err
	}
	return bw.Flush()
}
