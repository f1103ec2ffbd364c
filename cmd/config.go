package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/review-digest/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set review-digest configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "input_path: %s\n", cfg.Input())
		fmt.Fprintf(out, "output_path: %s\n", cfg.Output())
		if p := cfg.SQLite(); p != "" {
			fmt.Fprintf(out, "sqlite_path: %s\n", p)
		}
		fmt.Fprintf(out, "addr: %s\n", cfg.Addr)
		fmt.Fprintf(out, "debug: %t\n", cfg.Debug)
		fmt.Fprintf(out, "metrics: %t\n", cfg.Metrics)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Reload so command-line overrides are not written back.
		c, err := cfgpkg.Load(cfgFile)
		if errors.Is(err, fs.ErrNotExist) {
			c, err = cfgpkg.Defaults(), nil
		}
		if err != nil {
			return err
		}
		switch key {
		case "input_path":
			c.InputPath = val
		case "output_path":
			c.OutputPath = val
		case "sqlite_path":
			c.SQLitePath = val
		case "addr":
			c.Addr = val
		case "debug", "metrics":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %v", key, val)
			}
			if key == "debug" {
				c.Debug = b
			} else {
				c.Metrics = b
			}
		case "log_level":
			switch val {
			case "debug", "info", "warn", "error":
				c.LogLevel = val
			default:
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
			}
		case "log_format":
			switch val {
			case "json", "console":
				c.LogFormat = val
			default:
				return fmt.Errorf("invalid log_format: %s (use json|console)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
