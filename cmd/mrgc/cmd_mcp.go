package main

import (
	"context"
	"fmt"

	"github.com/JieUpup/MRGC/internal/logging"
	"github.com/JieUpup/MRGC/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve mrgc tools over the Model Context Protocol (stdio)",
		Long: `Start an MCP server on stdin/stdout exposing the mrgc_run, mrgc_graph and
mrgc_runs tools. Logs go to stderr so they never corrupt the protocol stream.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
				cfg.Output.DBPath = dbPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			trace := logging.NewTraceLogger(cfg.Output.TraceDir, cfg.Logging.Level)
			defer trace.Close()

			server, err := mcp.NewServer(&mcp.Config{
				Name:     "mrgc",
				Version:  version,
				Defaults: cfg.Experiment,
				DBPath:   cfg.Output.DBPath,
				Logger:   newLogger(cmd, cfg),
				Trace:    trace,
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			return server.Run(context.Background())
		},
	}

	cmd.Flags().String("db", "", "Store runs in this SQLite database (default: in memory)")

	return cmd
}
