// Package textenc decodes non-UTF-8 input and normalizes lines before
// character extraction.
package textenc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NewReader wraps r so that it yields UTF-8 decoded from the named charset.
// Names follow the WHATWG encoding labels ("latin1", "windows-1252",
// "shift_jis", "utf-16le", ...). An empty name or UTF-8 returns r unchanged.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	if isUTF8(name) {
		return r, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// Validate reports whether name is a known encoding.
func Validate(name string) error {
	_, err := NewReader(strings.NewReader(""), name)
	return err
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// Form is a Unicode normalization form applied to each line.
type Form int

const (
	None Form = iota
	NFC
	NFD
	NFKC
	NFKD
)

func (f Form) String() string {
	switch f {
	case NFC:
		return "nfc"
	case NFD:
		return "nfd"
	case NFKC:
		return "nfkc"
	case NFKD:
		return "nfkd"
	default:
		return "none"
	}
}

// ParseForm resolves a normalization form name. The empty string is None.
func ParseForm(name string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "nfc":
		return NFC, nil
	case "nfd":
		return NFD, nil
	case "nfkc":
		return NFKC, nil
	case "nfkd":
		return NFKD, nil
	default:
		return None, fmt.Errorf("unknown normalization form %q (want none, nfc, nfd, nfkc, or nfkd)", name)
	}
}

// Apply returns line in normalization form f.
func (f Form) Apply(line string) string {
	switch f {
	case NFC:
		return norm.NFC.String(line)
	case NFD:
		return norm.NFD.String(line)
	case NFKC:
		return norm.NFKC.String(line)
	case NFKD:
		return norm.NFKD.String(line)
	default:
		return line
	}
}
