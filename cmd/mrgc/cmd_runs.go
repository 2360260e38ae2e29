package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/JieUpup/MRGC/internal/results"
	"github.com/JieUpup/MRGC/internal/store"
	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs stored in a SQLite result database",
		Long: `List the runs saved with 'mrgc run --db'.

Examples:
  mrgc runs --db runs.db
  mrgc runs show 3 --db runs.db > run3.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openResultStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(cmd.Context())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				if runs == nil {
					runs = []store.Run{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"runs":  runs,
					"count": len(runs),
				})
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs stored.")
				return nil
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, bold(fmt.Sprintf("%-5s %-7s %-6s %-9s %-10s %-12s %-8s %s",
				"ID", "AGENTS", "SLOTS", "EPISODES", "MAX_EDGES", "SEED", "RECORDS", "CREATED")))
			for _, r := range runs {
				fmt.Fprintf(w, "%-5d %-7d %-6d %-9d %-10d %-12d %-8d %s\n",
					r.ID, r.Config.Agents, r.Config.Slots, r.Config.Episodes, r.Config.MaxEdges,
					r.Config.Seed, r.Records, dim(r.CreatedAt.Local().Format("2006-01-02 15:04:05")))
			}
			return nil
		},
	}

	cmd.PersistentFlags().String("db", "", "SQLite result database (default from config)")
	cmd.AddCommand(newRunsShowCmd())

	return cmd
}

func newRunsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a stored run's records as CSV (or JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}

			s, err := openResultStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.LoadMetrics(cmd.Context(), runID)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(records)
			}
			return results.WriteCSV(cmd.OutOrStdout(), records)
		},
	}
}

// openResultStore opens the database named by --db or the config.
func openResultStore(cmd *cobra.Command) (*store.SQLiteStore, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.Output.DBPath
	}
	if dbPath == "" {
		return nil, fmt.Errorf("no result database: pass --db or set output.db_path")
	}
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open result store: %w", err)
	}
	return s, nil
}
