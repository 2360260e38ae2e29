package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/JieUpup/MRGC/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize mrgc configuration",
		Long: `Show the effective configuration after the config file and MRGC_*
environment variables are applied.

Examples:
  mrgc config                      # Show effective settings as YAML
  mrgc config --json
  mrgc config init                 # Write ./mrgc.yaml with defaults`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
			}

			data, err := cfg.YAML()
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultConfigFile
			}
			force, _ := cmd.Flags().GetBool("force")

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			data, err := config.Default().YAML()
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"status": "initialized",
					"path":   path,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing config file")

	return cmd
}
