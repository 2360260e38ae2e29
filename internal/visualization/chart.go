package visualization

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/JieUpup/MRGC/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ChartMetrics lists the summary columns RenderSummaryChart can plot.
var ChartMetrics = []string{"conflicts", "delay", "utilization", "success_rate", "throughput"}

// chartTitle turns "success_rate" into "Success Rate".
func chartTitle(metric string) string {
	words := strings.Split(metric, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// SummaryChart builds a grouped bar chart of one metric: one group per
// agent count, one bar per strategy.
func SummaryChart(rows []models.SummaryRow, metric string) (*plot.Plot, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("charting %s: %w", metric, models.ErrEmptyInput)
	}
	if !slices.Contains(ChartMetrics, metric) {
		return nil, fmt.Errorf("unknown metric %q (valid: %s)", metric, strings.Join(ChartMetrics, ", "))
	}

	var agents []int
	var strategies []models.Strategy
	for _, r := range rows {
		if !slices.Contains(agents, r.Agents) {
			agents = append(agents, r.Agents)
		}
		if !slices.Contains(strategies, r.Strategy) {
			strategies = append(strategies, r.Strategy)
		}
	}
	slices.Sort(agents)
	slices.SortFunc(strategies, func(a, b models.Strategy) int {
		return slices.Index(models.Strategies, a) - slices.Index(models.Strategies, b)
	})

	p := plot.New()
	title := chartTitle(metric)
	p.Title.Text = title + " by Strategy"
	p.X.Label.Text = "Agents"
	p.Y.Label.Text = title
	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter

	groupNames := make([]string, len(agents))
	for i, a := range agents {
		groupNames[i] = strconv.Itoa(a)
	}
	p.NominalX(groupNames...)

	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", max(len(strategies), 3))
	if err != nil {
		return nil, fmt.Errorf("loading chart palette: %w", err)
	}
	colors := palette.Colors()

	barSpacing := vg.Points(3)
	barWidth := vg.Points(18)
	// Total width of the bar group, center to center.
	groupWidth := (barWidth + barSpacing) * vg.Length(len(strategies)-1)

	for i, s := range strategies {
		values := make(plotter.Values, len(agents))
		for _, r := range rows {
			if r.Strategy != s {
				continue
			}
			v, err := r.Metric(metric)
			if err != nil {
				return nil, err
			}
			values[slices.Index(agents, r.Agents)] = v
		}

		bc, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("building %s bars: %w", s, err)
		}
		bc.Offset = (barWidth+barSpacing)*vg.Length(i) - groupWidth/2
		bc.Color = colors[i%len(colors)]
		bc.LineStyle.Width = 0
		bc.LineStyle.Color = color.Transparent

		p.Add(bc)
		p.Legend.Add(string(s), bc)
	}

	return p, nil
}

// RenderSummaryChart writes the chart for metric to path. The file format
// follows the extension (.svg, .png, .pdf, ...).
func RenderSummaryChart(rows []models.SummaryRow, metric, path string) error {
	p, err := SummaryChart(rows, metric)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}
	if err := p.Save(9*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}
