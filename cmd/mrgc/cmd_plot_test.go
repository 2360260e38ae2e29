package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeSummary(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "summary.csv")
	args := append([]string{"summarize", "-o", path}, writeResults(t, dir, 20, 25)...)
	if _, err := execute(t, newSummarizeCmd(), args...); err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	return path
}

func TestPlotAllMetrics(t *testing.T) {
	tmpDir := isolateConfig(t)
	summaryPath := writeSummary(t, tmpDir)
	chartDir := filepath.Join(tmpDir, "charts")

	out, err := execute(t, newPlotCmd(), "plot", "--summary", summaryPath, "--output-dir", chartDir, "--json")
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}

	var result struct {
		Charts []string `json:"charts"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(result.Charts) != 5 {
		t.Fatalf("expected 5 charts, got %v", result.Charts)
	}
	for _, path := range result.Charts {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("chart %s not written: %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("chart %s is empty", path)
		}
	}
}

func TestPlotSingleMetricPNG(t *testing.T) {
	tmpDir := isolateConfig(t)
	summaryPath := writeSummary(t, tmpDir)
	chartDir := filepath.Join(tmpDir, "charts")

	if _, err := execute(t, newPlotCmd(), "plot", "--summary", summaryPath, "--output-dir", chartDir,
		"--metric", "conflicts", "--format", "png"); err != nil {
		t.Fatalf("plot failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(chartDir, "conflicts.png")); err != nil {
		t.Errorf("expected conflicts.png: %v", err)
	}
	if _, err := os.Stat(filepath.Join(chartDir, "delay.png")); !os.IsNotExist(err) {
		t.Errorf("only the requested metric should be charted")
	}
}

func TestPlotErrors(t *testing.T) {
	tmpDir := isolateConfig(t)
	summaryPath := writeSummary(t, tmpDir)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown metric", []string{"--summary", summaryPath, "--metric", "latency"}},
		{"unknown format", []string{"--summary", summaryPath, "--format", "gif"}},
		{"missing summary", []string{"--summary", filepath.Join(tmpDir, "missing.csv")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"plot", "--output-dir", filepath.Join(tmpDir, "out")}, tt.args...)
			if _, err := execute(t, newPlotCmd(), args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
