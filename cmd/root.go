package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/review-digest/internal/config"
	"github.com/KaramelBytes/review-digest/internal/logging"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Path flags (override config if set)
	flagInput  string
	flagOutput string
	flagSQLite string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "review-digest",
	Short: "Repair a broken review CSV and serve it grouped by category and product",
	Long: `review-digest loads a malformed review export (any of UTF-8/CP949/EUC-KR, comma/semicolon/tab),
repairs rows broken by stray delimiters, keeps the ten highest priority reviews per product and
serves the result as JSON next to a small web page.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.review-digest/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug mode: verbose logs and gin debug output")
	rootCmd.PersistentFlags().StringVar(&flagInput, "input", "", "review CSV to load (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "", "JSON file to write (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSQLite, "sqlite", "", "also mirror the store into this SQLite database")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("debug") {
		cfg.Debug = debug
	}
	if f.Changed("input") && flagInput != "" {
		cfg.InputPath = absPath(flagInput)
	}
	if f.Changed("output") && flagOutput != "" {
		cfg.OutputPath = absPath(flagOutput)
	}
	if f.Changed("sqlite") {
		cfg.SQLitePath = absPath(flagSQLite)
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}
}

// newLogger builds the process logger from the effective configuration.
func newLogger() (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogFormat)
}

// absPath anchors paths given on the command line to the working directory.
func absPath(p string) string {
	if p == "" {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
