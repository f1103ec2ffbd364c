package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/review-digest/internal/loader"
)

var (
	insSampleRows int
	insDelimiter  string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show which encoding/delimiter combination a review CSV loads with",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Input()
		if len(args) == 1 {
			path = absPath(args[0])
		}
		l := &loader.Loader{}
		if insDelimiter != "" {
			d, err := loader.ParseDelimiter(insDelimiter)
			if err != nil {
				return err
			}
			for _, c := range loader.Candidates() {
				if c.Delimiter == d {
					l.Candidates = append(l.Candidates, c)
				}
			}
		}
		out := cmd.OutOrStdout()
		l.OnAttempt = func(a loader.Attempt) {
			status := "rejected"
			if a.Accepted {
				status = "accepted"
			}
			line := fmt.Sprintf("  %-22s rows=%-6d %s", a.Candidate, a.Rows, status)
			if a.Err != nil {
				line += " (" + a.Err.Error() + ")"
			}
			fmt.Fprintln(out, line)
		}

		fmt.Fprintf(out, "File: %s\n", path)
		res, err := l.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Loaded as %s: %d rows\n", res.Candidate, len(res.Rows))
		n := insSampleRows
		if n < 0 {
			n = 0
		}
		if n > len(res.Rows) {
			n = len(res.Rows)
		}
		for _, row := range res.Rows[:n] {
			fmt.Fprintf(out, "  | %s\n", strings.Join(row[:], " | "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&insSampleRows, "sample-rows", 3, "number of repaired rows to print")
	inspectCmd.Flags().StringVar(&insDelimiter, "delimiter", "", "only try this delimiter: ',' | ';' | 'tab'")
}
