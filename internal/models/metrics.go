// Package models defines the value types shared by the simulation core and
// its outer layers.
package models

import (
	"fmt"
	"strconv"
)

// Strategy names a slot assignment strategy.
type Strategy string

const (
	StrategyMRGC       Strategy = "MRGC"       // MST-reduced greedy coloring
	StrategyRandom     Strategy = "Random"     // uniform random slot per agent
	StrategyRoundRobin Strategy = "RoundRobin" // agent i -> slot i mod slots
	StrategyFullyGraph Strategy = "FullyGraph" // greedy coloring of the complete graph
)

// Strategies lists every strategy in the order the runner executes them
// within an episode.
var Strategies = []Strategy{StrategyMRGC, StrategyRandom, StrategyRoundRobin, StrategyFullyGraph}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyMRGC, StrategyRandom, StrategyRoundRobin, StrategyFullyGraph:
		return true
	default:
		return false
	}
}

// ParseStrategy maps a strategy name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(name)
	if !s.Valid() {
		return "", fmt.Errorf("unknown strategy %q: %w", name, ErrInvalidConfiguration)
	}
	return s, nil
}

// MetricsHeader is the column order used whenever Metrics are serialized.
var MetricsHeader = []string{"episode", "strategy", "conflicts", "delay", "utilization", "success_rate", "throughput"}

// Metrics is the outcome of one strategy in one episode.
type Metrics struct {
	Episode     int      `json:"episode"`
	Strategy    Strategy `json:"strategy"`
	Conflicts   int      `json:"conflicts"`
	Delay       int      `json:"delay"`
	Utilization float64  `json:"utilization"`
	SuccessRate float64  `json:"success_rate"`
	Throughput  int      `json:"throughput"`
}

// Row returns the record's fields as strings in MetricsHeader order.
func (m Metrics) Row() []string {
	return []string{
		strconv.Itoa(m.Episode),
		string(m.Strategy),
		strconv.Itoa(m.Conflicts),
		strconv.Itoa(m.Delay),
		formatFloat(m.Utilization),
		formatFloat(m.SuccessRate),
		strconv.Itoa(m.Throughput),
	}
}

// ParseMetricsRow is the inverse of Metrics.Row.
func ParseMetricsRow(row []string) (Metrics, error) {
	if len(row) != len(MetricsHeader) {
		return Metrics{}, fmt.Errorf("expected %d fields, got %d", len(MetricsHeader), len(row))
	}
	var m Metrics
	var err error
	if m.Episode, err = strconv.Atoi(row[0]); err != nil {
		return Metrics{}, fmt.Errorf("parsing episode: %w", err)
	}
	if m.Strategy, err = ParseStrategy(row[1]); err != nil {
		return Metrics{}, err
	}
	if m.Conflicts, err = strconv.Atoi(row[2]); err != nil {
		return Metrics{}, fmt.Errorf("parsing conflicts: %w", err)
	}
	if m.Delay, err = strconv.Atoi(row[3]); err != nil {
		return Metrics{}, fmt.Errorf("parsing delay: %w", err)
	}
	if m.Utilization, err = strconv.ParseFloat(row[4], 64); err != nil {
		return Metrics{}, fmt.Errorf("parsing utilization: %w", err)
	}
	if m.SuccessRate, err = strconv.ParseFloat(row[5], 64); err != nil {
		return Metrics{}, fmt.Errorf("parsing success_rate: %w", err)
	}
	if m.Throughput, err = strconv.Atoi(row[6]); err != nil {
		return Metrics{}, fmt.Errorf("parsing throughput: %w", err)
	}
	return m, nil
}

// SummaryHeader is the column order of aggregated summary tables.
var SummaryHeader = []string{"agents", "strategy", "conflicts", "delay", "utilization", "success_rate", "throughput"}

// SummaryRow holds the mean metrics of one strategy at one agent count.
type SummaryRow struct {
	Agents      int      `json:"agents"`
	Strategy    Strategy `json:"strategy"`
	Conflicts   float64  `json:"conflicts"`
	Delay       float64  `json:"delay"`
	Utilization float64  `json:"utilization"`
	SuccessRate float64  `json:"success_rate"`
	Throughput  float64  `json:"throughput"`
}

// Row returns the summary's fields as strings in SummaryHeader order.
func (r SummaryRow) Row() []string {
	return []string{
		strconv.Itoa(r.Agents),
		string(r.Strategy),
		formatFloat(r.Conflicts),
		formatFloat(r.Delay),
		formatFloat(r.Utilization),
		formatFloat(r.SuccessRate),
		formatFloat(r.Throughput),
	}
}

// Metric returns the named mean ("conflicts", "delay", ...).
func (r SummaryRow) Metric(name string) (float64, error) {
	switch name {
	case "conflicts":
		return r.Conflicts, nil
	case "delay":
		return r.Delay, nil
	case "utilization":
		return r.Utilization, nil
	case "success_rate":
		return r.SuccessRate, nil
	case "throughput":
		return r.Throughput, nil
	default:
		return 0, fmt.Errorf("unknown metric %q", name)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
