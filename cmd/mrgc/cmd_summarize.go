package main

import (
	"encoding/json"
	"fmt"

	"github.com/JieUpup/MRGC/internal/constants"
	"github.com/JieUpup/MRGC/internal/summary"
	"github.com/spf13/cobra"
)

func newSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Aggregate results from several runs into a mean table",
		Long: `Average each metric per (agents, strategy) over one or more results CSVs.

Each --input names a results file and the agent count it was run with.

Examples:
  mrgc summarize --input results_edge20.csv=20 --input results_edge25.csv=25 \
                 --input results_edge50.csv=50
  mrgc summarize --input out.csv=20 --output summary.csv --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, _ := cmd.Flags().GetStringArray("input")
			output, _ := cmd.Flags().GetString("output")
			if len(specs) == 0 {
				return fmt.Errorf("at least one --input path=agents is required")
			}

			inputs := make([]summary.Input, 0, len(specs))
			for _, spec := range specs {
				in, err := summary.ParseLabel(spec)
				if err != nil {
					return err
				}
				inputs = append(inputs, in)
			}

			labeled, err := summary.Load(inputs)
			if err != nil {
				return err
			}
			rows, err := summary.Aggregate(labeled)
			if err != nil {
				return err
			}
			if err := summary.WriteFile(output, rows); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"output": output,
					"rows":   rows,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Summary written to %s\n\n", output)
			printSummaryTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().StringArrayP("input", "i", nil, "Results file and agent count as path=agents (repeatable)")
	cmd.Flags().StringP("output", "o", constants.DefaultSummaryPath, "Summary CSV path")

	return cmd
}
