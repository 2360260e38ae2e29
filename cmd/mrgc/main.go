package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JieUpup/MRGC/internal/config"
	"github.com/JieUpup/MRGC/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mrgc",
		Short: "MRGC - conflict-graph slot assignment simulator",
		Long: `mrgc simulates agents competing for a small number of shared resource slots.

Each episode builds a weighted conflict graph, assigns slots with four
strategies (MRGC, Random, RoundRobin, FullyGraph) and scores every
assignment for conflicts, delay, utilization, success rate and throughput.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./mrgc.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newSummarizeCmd(),
		newGraphCmd(),
		newPlotCmd(),
		newRunsCmd(),
		newMCPServerCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// loadConfig resolves configuration from the --config file, the
// environment and the --log-level flag. Subcommand flags are applied by
// the caller, which must then call Validate.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

// newLogger returns the stderr logger for cfg.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}

// signalContext returns a context cancelled on interrupt.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
