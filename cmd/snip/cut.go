package main

import (
	"context"
	"fmt"

	"github.com/praetorian-inc/snip/pkg/config"
	"github.com/praetorian-inc/snip/pkg/extract"
	"github.com/praetorian-inc/snip/pkg/runner"
	"github.com/praetorian-inc/snip/pkg/selection"
	"github.com/praetorian-inc/snip/pkg/source"
	"github.com/praetorian-inc/snip/pkg/textenc"
	"github.com/spf13/cobra"
)

var (
	cutFields          string
	cutBytes           string
	cutChars           string
	cutDelimiter       string
	cutOutputDelimiter string
	cutOnlyDelimited   bool
	cutProfile         string
	cutEncoding        string
	cutNormalize       string
	cutRecursive       bool
	cutIncludeHidden   bool
	cutMaxFileSize     int64
	cutFormat          string
	cutWorkers         int
)

var cutCmd = &cobra.Command{
	Use:   "cut [file...]",
	Short: "Print selected parts of each line",
	Long: `Print the selected fields, bytes, or characters of each line of each
file. With no file, or when file is -, read standard input.

Exactly one of --fields, --bytes, or --chars must be given, either as a
flag or through a --profile. Lines with fewer positions than requested
print whatever part of the selection they have.`,
	Example: `  snip cut -d : -f 1,7 /etc/passwd
  snip cut -c 1-8 --normalize nfc names.txt
  snip cut --profile users -r ./exports`,
	RunE: runCut,
}

func init() {
	registerCutFlags(cutCmd)
}

func registerCutFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cutFields, "fields", "f", "", "Selected fields")
	cmd.Flags().StringVarP(&cutBytes, "bytes", "b", "", "Selected bytes")
	cmd.Flags().StringVarP(&cutChars, "chars", "c", "", "Selected characters")
	cmd.Flags().StringVarP(&cutDelimiter, "delimiter", "d", "\t", "Field delimiter (a single byte)")
	cmd.Flags().StringVar(&cutOutputDelimiter, "output-delimiter", "", "Join selected fields with this string instead of the delimiter")
	cmd.Flags().BoolVarP(&cutOnlyDelimited, "only-delimited", "s", false, "Do not print lines without a delimiter (fields only)")
	cmd.Flags().StringVar(&cutProfile, "profile", "", "Load settings from a named profile in the config file")
	cmd.Flags().StringVar(&cutEncoding, "encoding", "", "Decode input from this charset (e.g. latin1, shift_jis)")
	cmd.Flags().StringVar(&cutNormalize, "normalize", "", "Unicode normalization before extraction: none, nfc, nfd, nfkc, nfkd")
	cmd.Flags().BoolVarP(&cutRecursive, "recursive", "r", false, "Read all files under directory arguments")
	cmd.Flags().BoolVar(&cutIncludeHidden, "include-hidden", false, "Include hidden files and directories with --recursive")
	cmd.Flags().Int64Var(&cutMaxFileSize, "max-file-size", 0, "Skip files larger than this with --recursive (bytes, 0 = no limit)")
	cmd.Flags().StringVar(&cutFormat, "format", "text", "Output format: text, json")
	cmd.Flags().IntVar(&cutWorkers, "workers", 1, "Number of inputs processed concurrently (-1 = one per CPU)")
}

func runCut(cmd *cobra.Command, args []string) error {
	profile, err := resolveProfile(cmd)
	if err != nil {
		return err
	}

	mode, list, err := profile.Mode()
	if err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	form, err := textenc.ParseForm(profile.Normalize)
	if err != nil {
		return err
	}

	// The list is parsed once, before any input is opened.
	ranges, err := selection.Parse(list)
	if err != nil {
		return err
	}
	logf(cmd, "selection %s: %s", mode, ranges)

	run, err := runner.New(runner.Config{
		Extractor: &extract.Extractor{
			Mode:            mode,
			Ranges:          ranges,
			OutputDelimiter: profile.OutputDelimiter,
			OnlyDelimited:   profile.OnlyDelimited,
		},
		Encoding:  profile.Encoding,
		Normalize: form,
		Format:    runner.Format(cutFormat),
		Workers:   cutWorkers,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sources, err := source.Expand(ctx, source.Config{
		Recursive:     cutRecursive,
		IncludeHidden: cutIncludeHidden,
		MaxFileSize:   cutMaxFileSize,
	}, args)
	if err != nil {
		return err
	}

	stats, err := run.Run(ctx, sources, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logf(cmd, "%d inputs, %d lines, %d printed, %d suppressed", stats.Sources, stats.Lines, stats.Emitted, stats.Suppressed)

	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d inputs could not be read", stats.Failed, stats.Sources)
	}
	return nil
}

// resolveProfile layers the flags given on the command line over the
// selected profile, if any. Flags left at their defaults do not override
// profile settings.
func resolveProfile(cmd *cobra.Command) (config.Profile, error) {
	var base config.Profile
	if cutProfile != "" {
		f, err := loadConfig()
		if err != nil {
			return config.Profile{}, err
		}
		if base, err = f.Profile(cutProfile); err != nil {
			return config.Profile{}, fmt.Errorf("%s: %w", f.Path, err)
		}
		logf(cmd, "using profile %q from %s", cutProfile, f.Path)
	}

	flags := cmd.Flags()
	var over config.Profile
	for _, sel := range []struct {
		name  string
		value string
		dst   *string
	}{
		{"fields", cutFields, &over.Fields},
		{"bytes", cutBytes, &over.Bytes},
		{"chars", cutChars, &over.Chars},
	} {
		if sel.value != "" {
			*sel.dst = sel.value
			continue
		}
		if flags.Changed(sel.name) {
			// An explicitly empty list is a syntax error, not a missing flag.
			_, err := selection.Parse("")
			return config.Profile{}, err
		}
	}
	if flags.Changed("delimiter") || cutDelimiter != string(extract.DefaultDelimiter) {
		if _, err := extract.ParseDelimiter(cutDelimiter); err != nil {
			return config.Profile{}, err
		}
		over.Delimiter = cutDelimiter
	}
	over.OutputDelimiter = cutOutputDelimiter
	over.OnlyDelimited = cutOnlyDelimited
	over.Encoding = cutEncoding
	over.Normalize = cutNormalize

	return base.Merge(over), nil
}

// loadConfig loads --config, or the nearest config file above the working
// directory.
func loadConfig() (*config.File, error) {
	path := configPath
	if path == "" {
		found, ok, err := config.Discover(".")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("--profile given but no config file found (looked for %v)", config.FileNames)
		}
		path = found
	}
	return config.Load(path)
}

// logf writes a diagnostic line to stderr when --verbose is set.
func logf(cmd *cobra.Command, format string, args ...any) {
	if !verbose || quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "snip: "+format+"\n", args...)
}
