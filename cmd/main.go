package main

import (
	"context"
	"io"
	"os"

	app "github.com/okian/olympstats/internal/app"
	"github.com/okian/olympstats/internal/config"
	"github.com/okian/olympstats/pkg/logger"
	"github.com/okian/olympstats/pkg/metrics"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli holds the flags shared by every command.
type cli struct {
	configPath string
	dataPath   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "olympstats",
		Short:        "Descriptive statistics over Olympic athletes, countries and events",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&c.dataPath, "data", "", "dataset file (overrides data_path)")

	root.AddCommand(newServeCmd(c), newReportCmd(c))
	return root
}

// setup loads configuration and initializes logging and metrics. Logs are
// written to logOut.
func (c *cli) setup(ctx context.Context, logOut io.Writer) error {
	var opts []config.LoadOption
	if c.configPath != "" {
		opts = append(opts, config.WithFile(c.configPath))
	}
	cfg, err := config.Load(ctx, opts...)
	if err != nil {
		return err
	}
	if c.dataPath != "" {
		cfg.DataPath = c.dataPath
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(logOut)); err != nil {
		return err
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	metrics.Configure(metricsOptions(cfg)...)

	c.cfg = cfg
	return nil
}

// metricsOptions maps the metrics settings of cfg onto manager options.
func metricsOptions(cfg *config.Config) []metrics.Option {
	return []metrics.Option{
		metrics.WithEnabled(cfg.MetricsEnabled),
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithMetricPrefix(cfg.MetricsPrefix),
		metrics.WithRefreshInterval(cfg.MetricsRefreshInterval),
		metrics.WithLatencyBuckets(cfg.MetricsLatencyBuckets),
		metrics.WithConstLabels(cfg.MetricsLabels),
	}
}

func (c *cli) newService() *app.Service {
	return app.New(
		app.WithLogger(logger.Get()),
		app.WithDataPath(c.cfg.DataPath),
		app.WithSkipInvalidRows(c.cfg.SkipInvalidRows),
	)
}
