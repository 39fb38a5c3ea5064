package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// styles holds color formatters for terminal output
type styles struct {
	errorPrefix *color.Color
	index       *color.Color
	rng         *color.Color
	note        *color.Color
}

// newStyles creates color formatters.
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		errorPrefix: color.New(color.Bold, color.FgHiRed),
		index:       color.New(color.FgHiBlack),
		rng:         color.New(color.Bold, color.FgHiGreen),
		note:        color.New(color.FgHiBlue),
	}

	for _, c := range []*color.Color{s.errorPrefix, s.index, s.rng, s.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

// colorEnabled resolves a --color value for output written to w.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		// Check if w is a TTY and NO_COLOR is not set
		f, ok := w.(*os.File)
		if !ok || os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color %q (want auto, always, or never)", mode)
	}
}

// printError writes err the way the command line reports fatal errors.
func printError(w io.Writer, err error) {
	enabled, cerr := colorEnabled(colorMode, w)
	if cerr != nil {
		enabled = false
	}
	s := newStyles(enabled)
	fmt.Fprintf(w, "%s %v\n", s.errorPrefix.Sprint("snip:"), err)
}
