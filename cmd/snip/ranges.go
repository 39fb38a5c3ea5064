package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/praetorian-inc/snip/pkg/selection"
	"github.com/spf13/cobra"
)

var rangesFormat string

var rangesCmd = &cobra.Command{
	Use:   "ranges <list>",
	Short: "Show how a selection list is parsed",
	Long: `Parse a selection list and print the 0-based half-open ranges it
produces, in the order they will be applied.`,
	Args: cobra.ExactArgs(1),
	RunE: runRanges,
}

func init() {
	rangesCmd.Flags().StringVar(&rangesFormat, "format", "human", "Output format: human, json")
}

func runRanges(cmd *cobra.Command, args []string) error {
	ranges, err := selection.Parse(args[0])
	if err != nil {
		return err
	}

	switch rangesFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(ranges)
	case "human", "":
		return outputRangesHuman(cmd, ranges)
	default:
		return fmt.Errorf("unknown format %q (want human or json)", rangesFormat)
	}
}

func outputRangesHuman(cmd *cobra.Command, ranges selection.List) error {
	enabled, err := colorEnabled(colorMode, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	s := newStyles(enabled)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for i, r := range ranges {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			s.index.Sprintf("#%d", i+1),
			s.rng.Sprint(r.String()),
			s.note.Sprint(describe(r)))
	}
	return w.Flush()
}

// describe renders r as the 1-based positions a user would type.
func describe(r selection.Range) string {
	if r.Len() == 1 {
		return fmt.Sprintf("position %d", r.End)
	}
	return fmt.Sprintf("positions %d-%d", r.Start+1, r.End)
}
