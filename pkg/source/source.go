// Package source resolves command line arguments into the inputs to read.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Stdin is the argument that names standard input.
const Stdin = "-"

// Source is one input to read lines from.
type Source struct {
	// Path is a file path, or Stdin.
	Path string
}

// IsStdin reports whether the source reads standard input.
func (s Source) IsStdin() bool {
	return s.Path == Stdin
}

// Name returns the display name used in diagnostics and JSON output.
func (s Source) Name() string {
	if s.IsStdin() {
		return "(stdin)"
	}
	return s.Path
}

// Config controls how arguments are expanded.
type Config struct {
	// Recursive expands directory arguments into the files beneath them.
	Recursive bool

	// IncludeHidden includes hidden files and directories (starting with .)
	// during recursive expansion.
	IncludeHidden bool

	// MaxFileSize skips files larger than this during recursive expansion
	// (0 = no limit).
	MaxFileSize int64
}

// Expand turns arguments into sources. No arguments means standard input.
//
// Without Recursive every argument becomes a source as given, so a missing
// file or a directory fails when it is opened and is reported alongside the
// other inputs. With Recursive, directories are replaced by the eligible files
// beneath them in lexical order.
func Expand(ctx context.Context, cfg Config, args []string) ([]Source, error) {
	if len(args) == 0 {
		return []Source{{Path: Stdin}}, nil
	}

	var sources []Source
	for _, arg := range args {
		if !cfg.Recursive || arg == Stdin {
			sources = append(sources, Source{Path: arg})
			continue
		}
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			sources = append(sources, Source{Path: arg})
			continue
		}
		files, err := walk(ctx, cfg, arg)
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
		for _, f := range files {
			sources = append(sources, Source{Path: f})
		}
	}
	return sources, nil
}

// Open opens a source for reading. Standard input is wrapped so that closing
// it leaves the underlying reader open.
func Open(src Source, stdin io.Reader) (io.ReadCloser, error) {
	if src.IsStdin() {
		return io.NopCloser(stdin), nil
	}
	info, err := os.Stat(src.Path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("is a directory")
	}
	return os.Open(src.Path)
}
