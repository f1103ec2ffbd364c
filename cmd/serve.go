package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/review-digest/internal/metrics"
	"github.com/KaramelBytes/review-digest/internal/pipeline"
	"github.com/KaramelBytes/review-digest/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the review store once and serve it over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	if rootCmd.PersistentFlags().Changed("addr") && flagAddr != "" {
		cfg.Addr = flagAddr
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	var m *metrics.Metrics
	if cfg.Metrics {
		m = metrics.New()
	}

	// The store is built before the listener opens and never changes afterwards.
	res, err := runPipeline(cmd.Context(), log, m)
	if err != nil {
		return err
	}
	srv, err := server.New(server.Options{
		Addr:    cfg.Addr,
		Store:   res.Store,
		JSON:    res.JSON,
		Logger:  log,
		Metrics: m,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("signal received", zap.Error(ctx.Err()))
		return srv.Stop(context.Background())
	}
}

// runPipeline runs the load/aggregate/persist pipeline with the effective config.
func runPipeline(ctx context.Context, log *zap.Logger, m *metrics.Metrics) (*pipeline.Result, error) {
	return pipeline.Run(ctx, pipeline.Options{
		InputPath:  cfg.Input(),
		OutputPath: cfg.Output(),
		SQLitePath: cfg.SQLite(),
		Logger:     log,
		Metrics:    m,
	})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "HTTP listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
	// Running the binary without a subcommand serves, like the original tool.
	rootCmd.RunE = runServe
}
