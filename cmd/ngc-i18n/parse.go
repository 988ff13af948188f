package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ngc-i18n/packages/core/src/render3/i18n"
	"ngc-i18n/packages/core/src/render3/interfaces"
)

var parseCmd = &cobra.Command{
	Use:   "parse <message>",
	Short: "Print the text and ICU structure of a message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		segments, err := i18n.SplitTextAndIcu(normalizeMessage(args[0]))
		if err != nil {
			return err
		}
		printSegments(cmd.OutOrStdout(), segments, 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func printSegments(w io.Writer, segments []interfaces.Segment, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, s := range segments {
		if !s.IsIcu() {
			if s.Text != "" {
				fmt.Fprintf(w, "%stext %q\n", pad, s.Text)
			}
			continue
		}
		fmt.Fprintf(w, "%s%s on binding %d\n", pad, s.Icu.Type, s.Icu.MainBinding)
		for i, c := range s.Icu.Cases {
			fmt.Fprintf(w, "%s  case %q\n", pad, c)
			printSegments(w, s.Icu.Values[i], depth+2)
		}
	}
}

func indent(s string) string {
	if s == "" {
		return "  (none)"
	}
	return "  " + strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n  ")
}
