// Package coloring implements the four slot assignment strategies compared
// by the simulator. A color is a slot id.
package coloring

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/JieUpup/MRGC/internal/graph"
	"github.com/JieUpup/MRGC/internal/models"
	"github.com/JieUpup/MRGC/internal/rng"
)

// Coloring maps agent id (the index) to slot id.
type Coloring []int

// ColorCount returns the number of distinct slots used.
func (c Coloring) ColorCount() int {
	seen := make(map[int]struct{}, len(c))
	for _, slot := range c {
		seen[slot] = struct{}{}
	}
	return len(seen)
}

// Valid reports whether no edge of g joins two agents in the same slot.
func (c Coloring) Valid(g *graph.Graph) bool {
	if len(c) != g.NumNodes() {
		return false
	}
	for _, e := range g.Edges() {
		if c[e.U] == c[e.V] {
			return false
		}
	}
	return true
}

// GreedyLargestFirst colors g greedily, visiting nodes by decreasing degree
// (ties by ascending id) and giving each the smallest color not already
// taken by a colored neighbor.
func GreedyLargestFirst(g *graph.Graph) Coloring {
	n := g.NumNodes()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(g.Degree(b), g.Degree(a))
	})

	colors := make(Coloring, n)
	colored := make([]bool, n)
	for _, u := range order {
		taken := make(map[int]bool, g.Degree(u))
		for _, v := range g.Neighbors(u) {
			if colored[v] {
				taken[colors[v]] = true
			}
		}
		color := 0
		for taken[color] {
			color++
		}
		colors[u] = color
		colored[u] = true
	}
	return colors
}

// MRGC reduces g to its minimum spanning forest and colors that greedily.
// Only the cheapest edges that keep the agents connected constrain the
// schedule, so at most two slots are needed.
func MRGC(g *graph.Graph) Coloring {
	return GreedyLargestFirst(g.MinimumSpanningTree())
}

// FullyGraph colors the complete conflict graph greedily, which gives every
// agent its own slot.
func FullyGraph(g *graph.Graph) Coloring {
	return GreedyLargestFirst(g)
}

// Random assigns each agent a uniform slot in [0, numSlots).
func Random(numAgents, numSlots int, r *rng.Source) (Coloring, error) {
	if err := checkCounts(numAgents, numSlots); err != nil {
		return nil, err
	}
	c := make(Coloring, numAgents)
	for i := range c {
		c[i] = r.IntN(numSlots)
	}
	return c, nil
}

// RoundRobin assigns agent i to slot i mod numSlots.
func RoundRobin(numAgents, numSlots int) (Coloring, error) {
	if err := checkCounts(numAgents, numSlots); err != nil {
		return nil, err
	}
	c := make(Coloring, numAgents)
	for i := range c {
		c[i] = i % numSlots
	}
	return c, nil
}

func checkCounts(numAgents, numSlots int) error {
	if numSlots <= 0 {
		return fmt.Errorf("slots must be positive, got %d: %w", numSlots, models.ErrInvalidConfiguration)
	}
	if numAgents < 0 {
		return fmt.Errorf("agents must be non-negative, got %d: %w", numAgents, models.ErrInvalidConfiguration)
	}
	return nil
}
