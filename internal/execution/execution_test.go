package execution

import (
	"errors"
	"testing"

	"github.com/JieUpup/MRGC/internal/coloring"
	"github.com/JieUpup/MRGC/internal/constants"
	"github.com/JieUpup/MRGC/internal/graph"
	"github.com/JieUpup/MRGC/internal/models"
	"github.com/JieUpup/MRGC/internal/rng"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSimulate(t *testing.T) {
	tests := []struct {
		name            string
		coloring        coloring.Coloring
		slots           int
		wantConflicts   int
		wantUsed        int
		wantUtilization float64
		wantSuccess     float64
		wantThroughput  int
	}{
		{"one slot of three counts once", coloring.Coloring{0, 0, 0, 1}, 4, 1, 2, 0.5, 0.75, 3},
		{"no sharing", coloring.Coloring{0, 1, 2}, 3, 0, 3, 1, 1, 3},
		{"two shared slots", coloring.Coloring{0, 1, 0, 1, 2}, 5, 2, 3, 0.6, 0.6, 3},
		{"overflow colors cap utilization", coloring.Coloring{0, 1, 2, 3, 4}, 2, 0, 5, 1, 1, 5},
		{"empty coloring", coloring.Coloring{}, 3, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Simulate(tt.coloring, tt.slots, rng.NewStream(1, rng.StreamDelay))
			if err != nil {
				t.Fatalf("Simulate: %v", err)
			}
			if got.Conflicts != tt.wantConflicts {
				t.Errorf("Conflicts = %d, want %d", got.Conflicts, tt.wantConflicts)
			}
			if got.Utilization != tt.wantUtilization {
				t.Errorf("Utilization = %v, want %v", got.Utilization, tt.wantUtilization)
			}
			if got.SuccessRate != tt.wantSuccess {
				t.Errorf("SuccessRate = %v, want %v", got.SuccessRate, tt.wantSuccess)
			}
			if got.Throughput != tt.wantThroughput {
				t.Errorf("Throughput = %d, want %d", got.Throughput, tt.wantThroughput)
			}
			minDelay := tt.wantUsed * constants.MinSlotDelay
			maxDelay := tt.wantUsed * constants.MaxSlotDelay
			if got.Delay < minDelay || got.Delay > maxDelay {
				t.Errorf("Delay = %d, want within [%d, %d]", got.Delay, minDelay, maxDelay)
			}
		})
	}
}

func TestSimulate_InvalidSlots(t *testing.T) {
	_, err := Simulate(coloring.Coloring{0}, 0, rng.New(1))
	if !errors.Is(err, models.ErrInvalidConfiguration) {
		t.Errorf("Simulate with 0 slots error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestSimulate_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		slots := rapid.IntRange(1, 12).Draw(t, "slots")
		c := coloring.Coloring(rapid.SliceOf(rapid.IntRange(0, 20)).Draw(t, "coloring"))
		seed := rapid.Int64().Draw(t, "seed")

		out, err := Simulate(c, slots, rng.NewStream(seed, rng.StreamDelay))
		require.NoError(t, err)
		require.LessOrEqual(t, out.Conflicts, len(c))
		require.Equal(t, len(c)-out.Conflicts, out.Throughput)
		require.GreaterOrEqual(t, out.Utilization, 0.0)
		require.LessOrEqual(t, out.Utilization, 1.0)
		require.GreaterOrEqual(t, out.SuccessRate, 0.0)
		require.LessOrEqual(t, out.SuccessRate, 1.0)

		again, err := Simulate(c, slots, rng.NewStream(seed, rng.StreamDelay))
		require.NoError(t, err)
		require.Equal(t, out, again, "same source seed must reproduce delay")
	})
}

func TestSimulate_CompleteGraphColoringHasNoConflicts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 30).Draw(t, "agents")
		slots := rapid.IntRange(1, 10).Draw(t, "slots")
		g, err := graph.NewFullyConnected(n, rapid.Int64().Draw(t, "seed"))
		require.NoError(t, err)

		out, err := Simulate(coloring.FullyGraph(g), slots, rng.New(0))
		require.NoError(t, err)
		require.Zero(t, out.Conflicts)
		require.Equal(t, 1.0, out.SuccessRate)
		require.Equal(t, n, out.Throughput)
	})
}

func TestOccupancy(t *testing.T) {
	loads := Occupancy(coloring.Coloring{2, 0, 2, 1})
	require.Equal(t, []SlotLoad{
		{Slot: 0, Agents: []int{1}},
		{Slot: 1, Agents: []int{3}},
		{Slot: 2, Agents: []int{0, 2}},
	}, loads)
	require.True(t, loads[2].Conflicted())
	require.False(t, loads[0].Conflicted())
}

func TestOutcomeRecord(t *testing.T) {
	o := Outcome{Conflicts: 1, Delay: 7, Utilization: 0.4, SuccessRate: 0.8, Throughput: 4}
	m := o.Record(3, models.StrategyRoundRobin)
	require.Equal(t, models.Metrics{
		Episode: 3, Strategy: models.StrategyRoundRobin,
		Conflicts: 1, Delay: 7, Utilization: 0.4, SuccessRate: 0.8, Throughput: 4,
	}, m)
}
