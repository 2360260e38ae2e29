package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Strategy
		wantErr bool
	}{
		{"mrgc", "MRGC", StrategyMRGC, false},
		{"random", "Random", StrategyRandom, false},
		{"round robin", "RoundRobin", StrategyRoundRobin, false},
		{"fully graph", "FullyGraph", StrategyFullyGraph, false},
		{"lowercase rejected", "mrgc", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Fatalf("ParseStrategy(%q) error = %v, want ErrInvalidConfiguration", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStrategy(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStrategy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMetricsRow(t *testing.T) {
	m := Metrics{Episode: 3, Strategy: StrategyRandom, Conflicts: 2, Delay: 11, Utilization: 0.8, SuccessRate: 0.9, Throughput: 18}
	want := []string{"3", "Random", "2", "11", "0.8", "0.9", "18"}
	if got := m.Row(); !reflect.DeepEqual(got, want) {
		t.Errorf("Row() = %v, want %v", got, want)
	}

	parsed, err := ParseMetricsRow(want)
	if err != nil {
		t.Fatalf("ParseMetricsRow: %v", err)
	}
	if parsed != m {
		t.Errorf("ParseMetricsRow() = %+v, want %+v", parsed, m)
	}
}

func TestParseMetricsRow_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"too few fields", []string{"0", "MRGC"}},
		{"bad episode", []string{"x", "MRGC", "0", "0", "0", "0", "0"}},
		{"bad strategy", []string{"0", "Greedy", "0", "0", "0", "0", "0"}},
		{"bad utilization", []string{"0", "MRGC", "0", "0", "high", "0", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMetricsRow(tt.row); err == nil {
				t.Errorf("ParseMetricsRow(%v) expected error", tt.row)
			}
		})
	}
}

func TestSummaryRowMetric(t *testing.T) {
	r := SummaryRow{Conflicts: 1, Delay: 2, Utilization: 0.5, SuccessRate: 0.75, Throughput: 19}
	for name, want := range map[string]float64{
		"conflicts": 1, "delay": 2, "utilization": 0.5, "success_rate": 0.75, "throughput": 19,
	} {
		got, err := r.Metric(name)
		if err != nil {
			t.Fatalf("Metric(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("Metric(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := r.Metric("latency"); err == nil {
		t.Error("expected error for unknown metric")
	}
}
