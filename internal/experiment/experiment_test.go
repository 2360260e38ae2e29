package experiment

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JieUpup/MRGC/internal/config"
	"github.com/JieUpup/MRGC/internal/constants"
	"github.com/JieUpup/MRGC/internal/logging"
	"github.com/JieUpup/MRGC/internal/models"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRun_EndToEndSmall(t *testing.T) {
	cfg := config.ExperimentConfig{Agents: 5, Slots: 2, Episodes: 1, MaxEdges: 2, Seed: 0}

	records, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)
	require.Len(t, records, 4)

	for i, r := range records {
		require.Equal(t, 0, r.Episode)
		require.Equal(t, models.Strategies[i], r.Strategy)
		require.GreaterOrEqual(t, r.Conflicts, 0)
		require.LessOrEqual(t, r.Conflicts, cfg.Agents)
		require.Equal(t, cfg.Agents-r.Conflicts, r.Throughput)
		require.GreaterOrEqual(t, r.Utilization, 0.0)
		require.LessOrEqual(t, r.Utilization, 1.0)
		require.GreaterOrEqual(t, r.SuccessRate, 0.0)
		require.LessOrEqual(t, r.SuccessRate, 1.0)
		require.GreaterOrEqual(t, r.Delay, constants.MinSlotDelay)
	}

	// Greedy coloring of a complete graph gives every agent its own slot.
	fully := records[3]
	require.Equal(t, 0, fully.Conflicts)
	require.Equal(t, 1.0, fully.SuccessRate)
	require.Equal(t, cfg.Agents, fully.Throughput)
	require.Equal(t, 1.0, fully.Utilization)
}

func TestRun_RoundRobinDeterministic(t *testing.T) {
	// 7 agents over 3 slots: every slot is shared.
	cfg := config.ExperimentConfig{Agents: 7, Slots: 3, Episodes: 2, MaxEdges: 2, Seed: 11}

	records, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)

	for _, r := range records {
		if r.Strategy != models.StrategyRoundRobin {
			continue
		}
		require.Equal(t, 3, r.Conflicts)
		require.Equal(t, 4, r.Throughput)
		require.Equal(t, 1.0, r.Utilization)
	}
}

func TestRun_Ordering(t *testing.T) {
	cfg := config.ExperimentConfig{Agents: 6, Slots: 3, Episodes: 3, MaxEdges: 2, Seed: 5}

	records, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)
	require.Len(t, records, cfg.Episodes*len(models.Strategies))

	for i, r := range records {
		require.Equal(t, i/len(models.Strategies), r.Episode)
		require.Equal(t, models.Strategies[i%len(models.Strategies)], r.Strategy)
	}
}

func TestRun_Reproducible(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		agents := rapid.IntRange(2, 15).Draw(t, "agents")
		cfg := config.ExperimentConfig{
			Agents:   agents,
			Slots:    rapid.IntRange(1, 6).Draw(t, "slots"),
			Episodes: rapid.IntRange(1, 4).Draw(t, "episodes"),
			MaxEdges: rapid.IntRange(1, agents-1).Draw(t, "maxEdges"),
			Seed:     rapid.Int64().Draw(t, "seed"),
		}

		first, err := Run(context.Background(), cfg, Options{})
		require.NoError(t, err)
		second, err := Run(context.Background(), cfg, Options{})
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

func TestRun_MRGCUsesAtMostTwoSlots(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		agents := rapid.IntRange(2, 20).Draw(t, "agents")
		cfg := config.ExperimentConfig{
			Agents:   agents,
			Slots:    rapid.IntRange(2, 6).Draw(t, "slots"),
			Episodes: 1,
			MaxEdges: rapid.IntRange(1, agents-1).Draw(t, "maxEdges"),
			Seed:     rapid.Int64().Draw(t, "seed"),
		}

		records, err := Run(context.Background(), cfg, Options{})
		require.NoError(t, err)

		mrgc := records[0]
		require.Equal(t, models.StrategyMRGC, mrgc.Strategy)
		// At most two colors are used, so at most two slots conflict.
		require.LessOrEqual(t, mrgc.Conflicts, 2)
		require.LessOrEqual(t, mrgc.Utilization, 2.0/float64(cfg.Slots)+1e-9)
	})
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ExperimentConfig
	}{
		{"max edges equals agents", config.ExperimentConfig{Agents: 3, Slots: 2, Episodes: 1, MaxEdges: 3}},
		{"zero slots", config.ExperimentConfig{Agents: 5, Slots: 0, Episodes: 1, MaxEdges: 2}},
		{"zero episodes", config.ExperimentConfig{Agents: 5, Slots: 2, Episodes: 0, MaxEdges: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Run(context.Background(), tt.cfg, Options{})
			if !errors.Is(err, models.ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got: %v", err)
			}
			if records != nil {
				t.Errorf("expected no records, got %d", len(records))
			}
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.ExperimentConfig{Agents: 5, Slots: 2, Episodes: 3, MaxEdges: 2, Seed: 1}
	records, err := Run(ctx, cfg, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
	if records != nil {
		t.Errorf("expected no records after cancellation, got %d", len(records))
	}
}

func TestRun_TraceAndLogger(t *testing.T) {
	dir := t.TempDir()
	trace := logging.NewTraceLogger(dir, "debug")
	var logBuf strings.Builder
	logger := logging.NewLogger("debug", &logBuf)

	cfg := config.ExperimentConfig{Agents: 5, Slots: 2, Episodes: 2, MaxEdges: 2, Seed: 3}
	_, err := Run(context.Background(), cfg, Options{Logger: logger, Trace: trace})
	require.NoError(t, err)
	trace.Close()

	data, err := os.ReadFile(filepath.Join(dir, logging.TraceFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 8)

	require.Contains(t, logBuf.String(), "episode complete")
	require.NotContains(t, logBuf.String(), "episode graphs")
}

func TestRun_TraceLevelLogsOccupancy(t *testing.T) {
	var logBuf strings.Builder
	logger := logging.NewLogger("trace", &logBuf)

	cfg := config.ExperimentConfig{Agents: 5, Slots: 2, Episodes: 1, MaxEdges: 2, Seed: 3}
	_, err := Run(context.Background(), cfg, Options{Logger: logger})
	require.NoError(t, err)

	out := logBuf.String()
	require.Contains(t, out, "random_components=")
	require.Equal(t, len(models.Strategies), strings.Count(out, "slot occupancy"))
	for _, s := range models.Strategies {
		require.Contains(t, out, "strategy="+string(s))
	}
}
