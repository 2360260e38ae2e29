package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/JieUpup/MRGC/internal/config"
	"github.com/JieUpup/MRGC/internal/experiment"
	"github.com/JieUpup/MRGC/internal/logging"
	"github.com/JieUpup/MRGC/internal/models"
	"github.com/JieUpup/MRGC/internal/results"
	"github.com/JieUpup/MRGC/internal/store"
	"github.com/JieUpup/MRGC/internal/summary"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the slot assignment experiment",
		Long: `Run every strategy over a sequence of episodes and write one CSV row per
strategy per episode.

Examples:
  mrgc run                                   # 20 agents, 5 slots, 10 episodes
  mrgc run --agents 50 --max-edges 10 --output results_edge50.csv
  mrgc run --db runs.db --json               # also store the run in SQLite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cmd, cfg)
			trace := logging.NewTraceLogger(cfg.Output.TraceDir, cfg.Logging.Level)
			defer trace.Close()
			if trace != nil {
				logger.Debug("tracing run", "dir", cfg.Output.TraceDir, "session", trace.Session())
			}

			ctx, cancel := signalContext(context.Background())
			defer cancel()

			logger.Info("starting run", "config", cfg.Experiment)
			records, err := experiment.Run(ctx, cfg.Experiment, experiment.Options{Logger: logger, Trace: trace})
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			if err := results.WriteFile(cfg.Output.CSVPath, records); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}
			logger.Info("results written", "path", cfg.Output.CSVPath, "records", len(records))

			var runID int64
			if cfg.Output.DBPath != "" {
				runID, err = saveRun(ctx, cfg.Output.DBPath, cfg.Experiment, records)
				if err != nil {
					return err
				}
				logger.Info("run stored", "db", cfg.Output.DBPath, "run_id", runID)
			}

			means, err := summary.ByStrategy(records)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				out := map[string]interface{}{
					"config":  cfg.Experiment,
					"output":  cfg.Output.CSVPath,
					"records": len(records),
					"summary": means,
				}
				if runID != 0 {
					out["run_id"] = runID
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d records written to %s\n\n", len(records), cfg.Output.CSVPath)
			printSummaryTable(cmd.OutOrStdout(), means)
			return nil
		},
	}

	cmd.Flags().Int("agents", 0, "Number of agents (default from config)")
	cmd.Flags().Int("slots", 0, "Number of shared slots (default from config)")
	cmd.Flags().Int("episodes", 0, "Number of episodes (default from config)")
	cmd.Flags().Int("max-edges", 0, "Largest random degree per node, below --agents (default from config)")
	cmd.Flags().Int64("seed", 0, "Base seed (default from config)")
	cmd.Flags().StringP("output", "o", "", "Results CSV path (default from config)")
	cmd.Flags().String("db", "", "Also store the run in this SQLite database")
	cmd.Flags().String("trace-dir", "", "Directory for trace.jsonl at debug/trace log level")

	return cmd
}

// applyRunFlags copies explicitly set experiment and output flags over cfg.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	applyExperimentFlags(cmd, &cfg.Experiment)
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.CSVPath, _ = flags.GetString("output")
	}
	if flags.Changed("db") {
		cfg.Output.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("trace-dir") {
		cfg.Output.TraceDir, _ = flags.GetString("trace-dir")
	}
}

// applyExperimentFlags copies whichever experiment flags the command
// defines and the user set over exp.
func applyExperimentFlags(cmd *cobra.Command, exp *config.ExperimentConfig) {
	flags := cmd.Flags()
	if flags.Changed("agents") {
		exp.Agents, _ = flags.GetInt("agents")
	}
	if flags.Changed("slots") {
		exp.Slots, _ = flags.GetInt("slots")
	}
	if flags.Changed("episodes") {
		exp.Episodes, _ = flags.GetInt("episodes")
	}
	if flags.Changed("max-edges") {
		exp.MaxEdges, _ = flags.GetInt("max-edges")
	}
	if flags.Changed("seed") {
		exp.Seed, _ = flags.GetInt64("seed")
	}
}

func saveRun(ctx context.Context, dbPath string, cfg config.ExperimentConfig, records []models.Metrics) (int64, error) {
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open result store: %w", err)
	}
	defer s.Close()

	runID, err := s.SaveRun(ctx, cfg, records)
	if err != nil {
		return 0, fmt.Errorf("failed to store run: %w", err)
	}
	return runID, nil
}

// printSummaryTable writes per-strategy means as an aligned table.
func printSummaryTable(w io.Writer, rows []models.SummaryRow) {
	withAgents := len(rows) > 0 && rows[0].Agents != 0
	header := ""
	if withAgents {
		header = fmt.Sprintf("%-7s ", "AGENTS")
	}
	header += fmt.Sprintf("%-11s %10s %8s %12s %13s %11s",
		"STRATEGY", "CONFLICTS", "DELAY", "UTILIZATION", "SUCCESS_RATE", "THROUGHPUT")
	fmt.Fprintln(w, bold(header))
	for _, r := range rows {
		if withAgents {
			fmt.Fprintf(w, "%-7d ", r.Agents)
		}
		fmt.Fprintf(w, "%s %10.2f %8.2f %12.2f %13.2f %11.2f\n",
			styleStrategy(r.Strategy, fmt.Sprintf("%-11s", r.Strategy)),
			r.Conflicts, r.Delay, r.Utilization, r.SuccessRate, r.Throughput)
	}
}
