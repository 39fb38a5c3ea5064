// Package runner drives extraction over a sequence of inputs.
package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/praetorian-inc/snip/pkg/extract"
	"github.com/praetorian-inc/snip/pkg/source"
	"github.com/praetorian-inc/snip/pkg/textenc"
	"golang.org/x/sync/errgroup"
)

// Format selects how extracted lines are written.
type Format string

const (
	// FormatText writes each extracted line followed by a newline.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// ParseFormat resolves a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or json)", s)
	}
}

// Config for a Runner.
type Config struct {
	// Extractor is applied to every line. Required.
	Extractor *extract.Extractor

	// Encoding is the charset inputs are decoded from ("" = UTF-8).
	Encoding string

	// Normalize is applied to each line before extraction.
	Normalize textenc.Form

	// Format of the output.
	Format Format

	// Workers is the number of inputs processed concurrently. 0 and 1 stream
	// inputs one at a time; a negative value uses runtime.NumCPU().
	Workers int
}

// Record is one line of JSON output.
type Record struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Text   string `json:"text"`
}

// Stats summarises a run.
type Stats struct {
	Sources    int
	Lines      int
	Emitted    int
	Suppressed int
	Failed     int
}

func (s *Stats) add(o Stats) {
	s.Sources += o.Sources
	s.Lines += o.Lines
	s.Emitted += o.Emitted
	s.Suppressed += o.Suppressed
	s.Failed += o.Failed
}

// Runner applies an extractor to inputs and writes the results.
type Runner struct {
	config Config
}

// New creates a Runner.
func New(config Config) (*Runner, error) {
	if config.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if err := textenc.Validate(config.Encoding); err != nil {
		return nil, err
	}
	format, err := ParseFormat(string(config.Format))
	if err != nil {
		return nil, err
	}
	config.Format = format
	if config.Workers < 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Runner{config: config}, nil
}

// sourceError is a failure to read one input. It is reported and the run
// carries on with the next input.
type sourceError struct {
	name string
	err  error
}

func (e *sourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.name, e.err)
}

func (e *sourceError) Unwrap() error { return e.err }

// Run processes sources in order, writing extracted lines to out. Inputs
// that cannot be opened or read are reported to errOut and counted in
// Stats.Failed. The returned error is non-nil only when writing to out fails
// or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, sources []source.Source, stdin io.Reader, out, errOut io.Writer) (Stats, error) {
	if r.config.Workers > 1 && len(sources) > 1 {
		return r.runParallel(ctx, sources, stdin, out, errOut)
	}

	var total Stats
	w := bufio.NewWriter(out)
	for _, src := range sources {
		st, err := r.process(ctx, src, stdin, w)
		total.add(st)
		if err != nil {
			if !r.report(err, errOut) {
				w.Flush()
				return total, err
			}
			total.Failed++
		}
	}
	if err := w.Flush(); err != nil {
		return total, fmt.Errorf("writing output: %w", err)
	}
	return total, nil
}

// report writes a source error to errOut and reports whether err was one.
func (r *Runner) report(err error, errOut io.Writer) bool {
	var se *sourceError
	if !errors.As(err, &se) {
		return false
	}
	fmt.Fprintln(errOut, se.Error())
	return true
}

type result struct {
	buf   bytes.Buffer
	stats Stats
	err   error
	done  chan struct{}
}

// runParallel reads and extracts sources concurrently into per-source
// buffers and writes them in source order as they complete.
func (r *Runner) runParallel(ctx context.Context, sources []source.Source, stdin io.Reader, out, errOut io.Writer) (Stats, error) {
	results := make([]*result, len(sources))
	for i := range results {
		results[i] = &result{done: make(chan struct{})}
	}

	readers := stdinReaders(sources, stdin)

	g, gctx := errgroup.WithContext(ctx)
	indexCh := make(chan int, r.config.Workers*2)

	// Feed source indexes to workers
	g.Go(func() error {
		defer close(indexCh)
		for i := range sources {
			select {
			case indexCh <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < r.config.Workers; i++ {
		g.Go(func() error {
			for idx := range indexCh {
				res := results[idx]
				res.stats, res.err = r.process(gctx, sources[idx], readers[idx], &res.buf)
				close(res.done)
			}
			return nil
		})
	}

	var total Stats
	var writeErr error
	for _, res := range results {
		select {
		case <-res.done:
		case <-gctx.Done():
			g.Wait()
			return total, gctx.Err()
		}
		total.add(res.stats)
		if res.err != nil {
			if !r.report(res.err, errOut) {
				writeErr = res.err
				break
			}
			total.Failed++
		}
		if _, err := res.buf.WriteTo(out); err != nil {
			writeErr = fmt.Errorf("writing output: %w", err)
			break
		}
	}

	if err := g.Wait(); err != nil && writeErr == nil {
		return total, err
	}
	return total, writeErr
}

// stdinReaders returns the stdin reader each source may use. Only the first
// stdin source reads stdin; later ones see an empty input, as they do when
// sources run one at a time and the first has already drained it.
func stdinReaders(sources []source.Source, stdin io.Reader) []io.Reader {
	readers := make([]io.Reader, len(sources))
	claimed := false
	for i, src := range sources {
		if !src.IsStdin() {
			continue
		}
		if claimed {
			readers[i] = strings.NewReader("")
			continue
		}
		readers[i] = stdin
		claimed = true
	}
	return readers
}

// process opens one source and extracts its lines into w.
func (r *Runner) process(ctx context.Context, src source.Source, stdin io.Reader, w io.Writer) (Stats, error) {
	rc, err := source.Open(src, stdin)
	if err != nil {
		return Stats{Sources: 1}, &sourceError{name: src.Name(), err: err}
	}
	defer rc.Close()

	return r.Cut(ctx, src.Name(), rc, w)
}

// Cut extracts every line of in into w. name labels JSON records and read
// errors. Unlike Run, a read error is returned instead of reported.
func (r *Runner) Cut(ctx context.Context, name string, in io.Reader, w io.Writer) (Stats, error) {
	st := Stats{Sources: 1}

	decoded, err := textenc.NewReader(in, r.config.Encoding)
	if err != nil {
		return st, &sourceError{name: name, err: err}
	}

	var enc *json.Encoder
	if r.config.Format == FormatJSON {
		enc = json.NewEncoder(w)
		enc.SetEscapeHTML(false)
	}

	br := bufio.NewReader(decoded)
	for lineNo := 1; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return st, &sourceError{name: name, err: readErr}
		}
		if line == "" && readErr == io.EOF {
			return st, nil
		}

		st.Lines++
		text, ok := r.config.Extractor.Line(r.config.Normalize.Apply(trimNewline(line)))
		if !ok {
			st.Suppressed++
		} else {
			st.Emitted++
			if enc != nil {
				err = enc.Encode(Record{Source: name, Line: lineNo, Text: text})
			} else {
				_, err = io.WriteString(w, text+"\n")
			}
			if err != nil {
				return st, fmt.Errorf("writing output: %w", err)
			}
		}

		if readErr == io.EOF {
			return st, nil
		}
	}
}

func trimNewline(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
