package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/coverage"
)

var (
	flagConfig  string
	flagSchema  string
	flagSteps   int
	flagReport  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "coveragesim",
	Short: "Headless multi-agent coverage-control simulation",
	Long: `coveragesim runs the centralized Voronoi coverage controller for a
fixed number of timesteps without a display, logging the coverage cost and
optionally writing the final step report as JSON.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "scenario JSON file (default: built-in scenario)")
	rootCmd.Flags().StringVar(&flagSchema, "schema", "configs/coverage.schema.json", "JSON schema for the scenario file")
	rootCmd.Flags().IntVarP(&flagSteps, "steps", "n", 500, "number of timesteps to simulate")
	rootCmd.Flags().StringVarP(&flagReport, "report", "o", "", "write the final step report to this JSON file")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging (per-cycle cost)")
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := coverage.DefaultConfig()
	if flagConfig != "" {
		cfg, err = coverage.LoadConfig(flagConfig, flagSchema)
		if err != nil {
			return fmt.Errorf("loading scenario: %w", err)
		}
	}

	controller, err := coverage.NewController(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	last, err := controller.Run(ctx, flagSteps)
	if err == nil && last == nil {
		return fmt.Errorf("nothing to simulate: steps = %d", flagSteps)
	}
	if err != nil {
		if last != nil {
			logger.Error("run aborted",
				zap.Int("completedSteps", last.Step),
				zap.Float64("lastCost", last.Cost),
				zap.Error(err))
		}
		return err
	}

	logger.Info("run complete",
		zap.String("run", last.RunID.String()),
		zap.Int("steps", last.Step),
		zap.Float64("finalCost", last.Cost))

	if flagReport != "" {
		b, err := json.MarshalIndent(last, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		if err := os.WriteFile(flagReport, b, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("report written", zap.String("path", flagReport))
	}
	return nil
}

func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
