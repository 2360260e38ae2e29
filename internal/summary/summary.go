// Package summary aggregates results from several runs into mean tables
// keyed by agent count and strategy.
package summary

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/JieUpup/MRGC/internal/constants"
	"github.com/JieUpup/MRGC/internal/models"
	"github.com/JieUpup/MRGC/internal/results"
)

// Labeled is one run's records tagged with the agent count it ran at.
type Labeled struct {
	Agents  int
	Records []models.Metrics
}

// Input names a results file and the agent count it was produced with.
type Input struct {
	Path   string
	Agents int
}

// ParseLabel parses "path=agents", e.g. "results_edge20.csv=20".
func ParseLabel(s string) (Input, error) {
	i := strings.LastIndex(s, "=")
	if i <= 0 || i == len(s)-1 {
		return Input{}, fmt.Errorf("input %q must have the form path=agents: %w", s, models.ErrInvalidConfiguration)
	}
	agents, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return Input{}, fmt.Errorf("input %q: agent count: %w", s, err)
	}
	if agents <= 0 {
		return Input{}, fmt.Errorf("input %q: agent count must be positive: %w", s, models.ErrInvalidConfiguration)
	}
	return Input{Path: s[:i], Agents: agents}, nil
}

// Load reads every input's results file.
func Load(inputs []Input) ([]Labeled, error) {
	out := make([]Labeled, 0, len(inputs))
	for _, in := range inputs {
		records, err := results.ReadFile(in.Path)
		if err != nil {
			return nil, err
		}
		out = append(out, Labeled{Agents: in.Agents, Records: records})
	}
	return out, nil
}

type groupKey struct {
	agents   int
	strategy models.Strategy
}

type accumulator struct {
	n                                                  int
	conflicts, delay, utilization, success, throughput float64
}

func (a *accumulator) add(m models.Metrics) {
	a.n++
	a.conflicts += float64(m.Conflicts)
	a.delay += float64(m.Delay)
	a.utilization += m.Utilization
	a.success += m.SuccessRate
	a.throughput += float64(m.Throughput)
}

func (a *accumulator) row(k groupKey) models.SummaryRow {
	n := float64(a.n)
	return models.SummaryRow{
		Agents:      k.agents,
		Strategy:    k.strategy,
		Conflicts:   round(a.conflicts / n),
		Delay:       round(a.delay / n),
		Utilization: round(a.utilization / n),
		SuccessRate: round(a.success / n),
		Throughput:  round(a.throughput / n),
	}
}

// Aggregate groups records by (agents, strategy) and averages each metric,
// rounded to two decimals. Rows are sorted by agent count, then strategy
// name. Inputs sharing an agent count are pooled.
func Aggregate(inputs []Labeled) ([]models.SummaryRow, error) {
	groups := make(map[groupKey]*accumulator)
	for _, in := range inputs {
		for _, m := range in.Records {
			k := groupKey{agents: in.Agents, strategy: m.Strategy}
			acc, ok := groups[k]
			if !ok {
				acc = &accumulator{}
				groups[k] = acc
			}
			acc.add(m)
		}
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("aggregating: %w", models.ErrEmptyInput)
	}

	rows := make([]models.SummaryRow, 0, len(groups))
	for k, acc := range groups {
		rows = append(rows, acc.row(k))
	}
	slices.SortFunc(rows, func(a, b models.SummaryRow) int {
		return cmp.Or(cmp.Compare(a.Agents, b.Agents), cmp.Compare(a.Strategy, b.Strategy))
	})
	return rows, nil
}

// ByStrategy averages a single run's records per strategy, in execution
// order. Agents is left zero.
func ByStrategy(records []models.Metrics) ([]models.SummaryRow, error) {
	rows, err := Aggregate([]Labeled{{Records: records}})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(rows, func(a, b models.SummaryRow) int {
		return cmp.Compare(slices.Index(models.Strategies, a.Strategy), slices.Index(models.Strategies, b.Strategy))
	})
	return rows, nil
}

// WriteCSV writes rows with a models.SummaryHeader header line.
func WriteCSV(w io.Writer, rows []models.SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.SummaryHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("writing %s row: %w", r.Strategy, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a table written by WriteCSV.
func ReadCSV(r io.Reader) ([]models.SummaryRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(models.SummaryHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading summary header: %w", models.ErrEmptyInput)
	}
	if !slices.Equal(records[0], models.SummaryHeader) {
		return nil, fmt.Errorf("unexpected summary header %v", records[0])
	}

	rows := make([]models.SummaryRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile parses the summary CSV at path.
func ReadFile(path string) ([]models.SummaryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening summary: %w", err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func parseRow(rec []string) (models.SummaryRow, error) {
	var row models.SummaryRow
	var err error
	if row.Agents, err = strconv.Atoi(rec[0]); err != nil {
		return row, fmt.Errorf("parsing agents: %w", err)
	}
	if row.Strategy, err = models.ParseStrategy(rec[1]); err != nil {
		return row, err
	}
	fields := []*float64{&row.Conflicts, &row.Delay, &row.Utilization, &row.SuccessRate, &row.Throughput}
	for i, dst := range fields {
		if *dst, err = strconv.ParseFloat(rec[i+2], 64); err != nil {
			return row, fmt.Errorf("parsing %s: %w", models.SummaryHeader[i+2], err)
		}
	}
	return row, nil
}

// WriteFile atomically writes rows to path.
func WriteFile(path string, rows []models.SummaryRow) error {
	return results.WriteAtomic(path, func(w io.Writer) error {
		return WriteCSV(w, rows)
	})
}

func round(f float64) float64 {
	p := math.Pow10(constants.SummaryPrecision)
	return math.Round(f*p) / p
}
