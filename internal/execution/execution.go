// Package execution scores a slot assignment by simulating one round of
// agents executing in their assigned slots.
package execution

import (
	"fmt"
	"slices"

	"github.com/JieUpup/MRGC/internal/coloring"
	"github.com/JieUpup/MRGC/internal/constants"
	"github.com/JieUpup/MRGC/internal/models"
	"github.com/JieUpup/MRGC/internal/rng"
)

// Outcome holds the metrics of one simulated round.
type Outcome struct {
	Conflicts   int
	Delay       int
	Utilization float64
	SuccessRate float64
	Throughput  int
}

// Record stamps o with its episode and strategy.
func (o Outcome) Record(episode int, strategy models.Strategy) models.Metrics {
	return models.Metrics{
		Episode:     episode,
		Strategy:    strategy,
		Conflicts:   o.Conflicts,
		Delay:       o.Delay,
		Utilization: o.Utilization,
		SuccessRate: o.SuccessRate,
		Throughput:  o.Throughput,
	}
}

// Simulate scores c against numSlots slots.
//
// A slot shared by more than one agent counts as a single conflict however
// many agents it holds. Each used slot adds one delay draw in
// [MinSlotDelay, MaxSlotDelay] from r, in ascending slot order. Slots beyond
// numSlots (greedy colorings of dense graphs) are counted as used but
// utilization is capped at 1. Every metric except Delay depends only on c
// and numSlots.
func Simulate(c coloring.Coloring, numSlots int, r *rng.Source) (Outcome, error) {
	if numSlots <= 0 {
		return Outcome{}, fmt.Errorf("slots must be positive, got %d: %w", numSlots, models.ErrInvalidConfiguration)
	}

	loads := Occupancy(c)
	conflicts := 0
	delay := 0
	for _, load := range loads {
		if load.Conflicted() {
			conflicts++
		}
		delay += r.IntRange(constants.MinSlotDelay, constants.MaxSlotDelay)
	}

	successRate := 0.0
	if len(c) > 0 {
		successRate = 1 - float64(conflicts)/float64(len(c))
	}

	return Outcome{
		Conflicts:   conflicts,
		Delay:       delay,
		Utilization: float64(min(len(loads), numSlots)) / float64(numSlots),
		SuccessRate: successRate,
		Throughput:  len(c) - conflicts,
	}, nil
}

// SlotLoad lists the agents sharing one slot.
type SlotLoad struct {
	Slot   int   `json:"slot"`
	Agents []int `json:"agents"`
}

// Conflicted reports whether more than one agent shares the slot.
func (l SlotLoad) Conflicted() bool {
	return len(l.Agents) > 1
}

// Occupancy groups c by slot, slots ascending and agents ascending within
// a slot.
func Occupancy(c coloring.Coloring) []SlotLoad {
	bySlot := make(map[int][]int)
	for agent, slot := range c {
		bySlot[slot] = append(bySlot[slot], agent)
	}
	loads := make([]SlotLoad, 0, len(bySlot))
	for slot, agents := range bySlot {
		loads = append(loads, SlotLoad{Slot: slot, Agents: agents})
	}
	slices.SortFunc(loads, func(a, b SlotLoad) int { return a.Slot - b.Slot })
	return loads
}
