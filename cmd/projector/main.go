// Package main provides the projector binary entry point.
// Projector runs Monte Carlo share-price projections and renders them as
// tables, CSV, JSON or HTML, or serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/share-projector/internal/calculation"
	"github.com/rpgo/share-projector/internal/config"
	"github.com/rpgo/share-projector/internal/domain"
	"github.com/rpgo/share-projector/internal/output"
	"github.com/rpgo/share-projector/internal/server"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "projector"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Monte Carlo share-price projection engine",
		Long: `Projector simulates many random price paths for a share holding that
grows by a fixed number of shares every year, and reports percentile bands of
the portfolio value for each projected year.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to PROJECTOR_LOG_LEVEL or info")

	cmd.AddCommand(projectCmd(&logLevel))
	cmd.AddCommand(exampleConfigCmd())
	cmd.AddCommand(serveCmd(&logLevel))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})
	return cmd
}

func projectCmd(logLevel *string) *cobra.Command {
	var (
		configPath string
		query      string
		format     string
		outputDir  string
		seed       int64
		workers    int
		horizon    int
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run a projection and print or save the report",
		Example: `  projector project --query "initialPrice=100&annualShares=50&annualGrowthRate=10"
  projector project --config params.yaml --format html --output reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			logger := newLogger(pick(*logLevel, settings.LogLevel))

			cfg, err := loadConfiguration(configPath, query)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if cmd.Flags().Changed("horizon") {
				cfg.MaxHorizon = horizon
			}
			settings.Apply(cfg)
			if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			builder := calculation.NewProjectionBuilder(cfg.Seed, cfg.Workers)
			builder.SetLogger(calculation.NewSlogLogger(logger))
			logger.Debug("Starting projection", "seed", builder.Aggregator.Seed, "workers", builder.Aggregator.Workers, "horizons", len(cfg.Horizons()))

			start := time.Now()
			table, err := builder.Build(cmd.Context(), cfg.Parameters, cfg.Horizons())
			if err != nil {
				return fmt.Errorf("projection failed: %w", err)
			}
			logger.Info("Projection complete", "elapsed", time.Since(start), "seed", builder.Aggregator.Seed)

			report := &domain.ProjectionReport{
				Table:        table,
				BaselineYear: config.EffectiveBaselineYear(cfg),
				GeneratedAt:  time.Now(),
			}
			if outputDir != "" {
				path, err := output.GenerateReport(report, format, outputDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}
			return output.Render(cmd.OutOrStdout(), report, format)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Parameter file path (YAML)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Parameters as a query string; overrides the file's parameters")
	cmd.Flags().StringVarP(&format, "format", "f", "console", fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write the report to a timestamped file in this directory instead of stdout")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible tables (0 draws a fresh seed)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent simulation workers (0 uses all CPUs)")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Number of projected years")
	return cmd
}

func exampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config [file]",
		Short: "Write an example parameter file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "projection_config.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := config.SaveConfiguration(cfg, filename); err != nil {
				return fmt.Errorf("failed to save example configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", filename)
			return nil
		},
	}
}

func serveCmd(logLevel *string) *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			logger := newLogger(pick(*logLevel, settings.LogLevel))

			cfg, err := loadConfiguration(configPath, "")
			if err != nil {
				return err
			}
			settings.Apply(cfg)
			if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			slog.Info("Projector ready", "version", Version, "max_horizon", len(cfg.Horizons()))
			return server.New(*cfg, logger).ListenAndServe(cmd.Context(), pick(addr, settings.Addr))
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file supplying seed, workers, horizon and baseline year")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; defaults to PROJECTOR_ADDR or :8080")
	return cmd
}

// loadConfiguration reads the parameter file, or the defaults when none is
// given, and overlays query-string parameters clamped to the input ranges.
func loadConfiguration(path, query string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	cfg := config.DefaultConfiguration()
	if path != "" {
		loaded, err := parser.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if query != "" {
		values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
		if err != nil {
			return nil, fmt.Errorf("parse query: %w", err)
		}
		params, err := config.DecodeQuery(values)
		if err != nil {
			return nil, err
		}
		cfg.Parameters = config.ClampToInputRanges(params)
	}
	return cfg, nil
}

func newLogger(levelName string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
