package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/JieUpup/MRGC/internal/constants"
	"github.com/JieUpup/MRGC/internal/summary"
	"github.com/JieUpup/MRGC/internal/visualization"
	"github.com/spf13/cobra"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Chart summary metrics per strategy and agent count",
		Long: `Render grouped bar charts from a summary CSV produced by 'mrgc summarize'.

Examples:
  mrgc plot                                   # every metric, SVG, into ./charts
  mrgc plot --metric conflicts --format png --open`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("summary")
			metric, _ := cmd.Flags().GetString("metric")
			outDir, _ := cmd.Flags().GetString("output-dir")
			format, _ := cmd.Flags().GetString("format")
			open, _ := cmd.Flags().GetBool("open")

			switch format {
			case "svg", "png", "pdf":
			default:
				return fmt.Errorf("unsupported format %q (use 'svg', 'png', or 'pdf')", format)
			}

			rows, err := summary.ReadFile(input)
			if err != nil {
				return err
			}

			metrics := visualization.ChartMetrics
			if metric != "all" {
				metrics = []string{metric}
			}

			var written []string
			for _, m := range metrics {
				path := filepath.Join(outDir, m+"."+format)
				if err := visualization.RenderSummaryChart(rows, m, path); err != nil {
					return err
				}
				written = append(written, path)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"charts": written,
				})
			} else {
				for _, path := range written {
					fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", path)
				}
			}

			if open {
				for _, path := range written {
					if err := visualization.OpenFile(path); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "Could not open %s: %v\n", path, err)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().String("summary", constants.DefaultSummaryPath, "Summary CSV to chart")
	cmd.Flags().String("metric", "all", "Metric to chart: conflicts, delay, utilization, success_rate, throughput, or all")
	cmd.Flags().String("output-dir", "charts", "Directory for rendered charts")
	cmd.Flags().String("format", "svg", "Chart format: svg, png, or pdf")
	cmd.Flags().Bool("open", false, "Open charts in the default viewer")

	return cmd
}
