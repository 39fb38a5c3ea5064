// Package config loads named selection profiles from a YAML or TOML file.
//
// A profile stores the flags of a frequently used cut so it can be recalled
// with --profile:
//
//	defaults:
//	  encoding: utf-8
//	profiles:
//	  users:
//	    fields: "1,3"
//	    delimiter: ":"
//	  prefix:
//	    chars: "1-8"
//	    normalize: nfc
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/praetorian-inc/snip/pkg/extract"
	"github.com/praetorian-inc/snip/pkg/textenc"
	"gopkg.in/yaml.v3"
)

// FileNames are the config file names searched for by Discover, in order.
var FileNames = []string{".snip.yaml", ".snip.yml", ".snip.toml"}

// Profile holds the settings of one selection.
type Profile struct {
	Fields          string `yaml:"fields" toml:"fields"`
	Bytes           string `yaml:"bytes" toml:"bytes"`
	Chars           string `yaml:"chars" toml:"chars"`
	Delimiter       string `yaml:"delimiter" toml:"delimiter"`
	OutputDelimiter string `yaml:"output_delimiter" toml:"output_delimiter"`
	OnlyDelimited   bool   `yaml:"only_delimited" toml:"only_delimited"`
	Encoding        string `yaml:"encoding" toml:"encoding"`
	Normalize       string `yaml:"normalize" toml:"normalize"`
}

// File is a parsed config file.
type File struct {
	// Path the file was loaded from.
	Path string `yaml:"-" toml:"-"`

	Defaults Profile            `yaml:"defaults" toml:"defaults"`
	Profiles map[string]Profile `yaml:"profiles" toml:"profiles"`
}

// Load reads a config file. The format is chosen by extension: .yaml and
// .yml are YAML, .toml is TOML. Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format (want .yaml, .yml, or .toml)", path)
	}

	f.Path = path
	return &f, nil
}

// Discover walks up from startDir looking for one of FileNames. ok is false
// when no config file exists.
func Discover(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Names returns the profile names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile returns the named profile layered over the file's defaults.
func (f *File) Profile(name string) (Profile, error) {
	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	return f.Defaults.Merge(p), nil
}

// Merge returns p overridden by the non-zero settings of over. Setting any
// of fields, bytes or chars in over replaces the selection of p entirely.
func (p Profile) Merge(over Profile) Profile {
	out := p
	if over.Fields != "" || over.Bytes != "" || over.Chars != "" {
		out.Fields, out.Bytes, out.Chars = over.Fields, over.Bytes, over.Chars
	}
	if over.Delimiter != "" {
		out.Delimiter = over.Delimiter
	}
	if over.OutputDelimiter != "" {
		out.OutputDelimiter = over.OutputDelimiter
	}
	if over.OnlyDelimited {
		out.OnlyDelimited = true
	}
	if over.Encoding != "" {
		out.Encoding = over.Encoding
	}
	if over.Normalize != "" {
		out.Normalize = over.Normalize
	}
	return out
}

// Selection returns the one selection mode set on p and its list.
func (p Profile) Selection() (extract.Kind, string, error) {
	var kinds []extract.Kind
	var list string
	if p.Fields != "" {
		kinds, list = append(kinds, extract.Fields), p.Fields
	}
	if p.Bytes != "" {
		kinds, list = append(kinds, extract.Bytes), p.Bytes
	}
	if p.Chars != "" {
		kinds, list = append(kinds, extract.Chars), p.Chars
	}
	switch len(kinds) {
	case 0:
		return 0, "", fmt.Errorf("must have --fields, --bytes, or --chars")
	case 1:
		return kinds[0], list, nil
	default:
		return 0, "", fmt.Errorf("only one of --fields, --bytes, --chars may be given")
	}
}

// Mode returns the extraction mode described by p.
func (p Profile) Mode() (extract.Mode, string, error) {
	kind, list, err := p.Selection()
	if err != nil {
		return extract.Mode{}, "", err
	}
	delim := extract.DefaultDelimiter
	if p.Delimiter != "" {
		if delim, err = extract.ParseDelimiter(p.Delimiter); err != nil {
			return extract.Mode{}, "", err
		}
	}
	return extract.NewMode(kind, delim), list, nil
}

// Validate checks the encoding and normalization settings.
func (p Profile) Validate() error {
	if err := textenc.Validate(p.Encoding); err != nil {
		return err
	}
	if _, err := textenc.ParseForm(p.Normalize); err != nil {
		return err
	}
	if p.Delimiter != "" {
		if _, err := extract.ParseDelimiter(p.Delimiter); err != nil {
			return err
		}
	}
	return nil
}
