package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the review store once, write the JSON file and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		res, err := runPipeline(cmd.Context(), log, nil)
		if err != nil {
			return err
		}
		if !res.Loaded {
			return fmt.Errorf("no usable review data in %s; %s left untouched", cfg.Input(), cfg.Output())
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Loaded %s as %s\n", cfg.Input(), res.Candidate)
		fmt.Fprintf(out, "✓ Wrote %d reviews in %d categories to %s\n", res.Store.Len(), len(res.Store), cfg.Output())
		if p := cfg.SQLite(); p != "" {
			fmt.Fprintf(out, "✓ Mirrored store to %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
