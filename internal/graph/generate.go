package graph

import (
	"fmt"

	"github.com/JieUpup/MRGC/internal/constants"
	"github.com/JieUpup/MRGC/internal/models"
	"github.com/JieUpup/MRGC/internal/rng"
)

// NewRandom builds a random-degree conflict graph. Each node, in ascending
// order, draws k in [1, maxEdges] and connects to k distinct other nodes
// sampled uniformly; edges that already exist keep their first weight.
// The result depends only on the arguments.
func NewRandom(numAgents, maxEdges int, seed int64) (*Graph, error) {
	if numAgents < 2 {
		return nil, fmt.Errorf("random graph needs at least 2 agents, got %d: %w", numAgents, models.ErrInvalidConfiguration)
	}
	if maxEdges < 1 || maxEdges >= numAgents {
		return nil, fmt.Errorf("max_edges must be in [1, %d), got %d: %w", numAgents, maxEdges, models.ErrInvalidConfiguration)
	}

	r := rng.New(seed)
	g := New(numAgents)
	others := make([]int, 0, numAgents-1)
	for node := 0; node < numAgents; node++ {
		others = others[:0]
		for n := 0; n < numAgents; n++ {
			if n != node {
				others = append(others, n)
			}
		}
		k := r.IntRange(1, maxEdges)
		neighbors, err := r.Sample(others, k)
		if err != nil {
			return nil, fmt.Errorf("sampling neighbors of %d: %w", node, err)
		}
		for _, n := range neighbors {
			if g.HasEdge(node, n) {
				continue
			}
			weight := r.IntRange(constants.MinEdgeWeight, constants.MaxEdgeWeight)
			if _, err := g.AddEdge(node, n, weight); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// NewFullyConnected builds the complete graph on numAgents nodes, drawing
// one weight per pair in lexicographic pair order.
func NewFullyConnected(numAgents int, seed int64) (*Graph, error) {
	if numAgents < 1 {
		return nil, fmt.Errorf("fully connected graph needs at least 1 agent, got %d: %w", numAgents, models.ErrInvalidConfiguration)
	}

	r := rng.New(seed)
	g := New(numAgents)
	for u := 0; u < numAgents; u++ {
		for v := u + 1; v < numAgents; v++ {
			weight := r.IntRange(constants.MinEdgeWeight, constants.MaxEdgeWeight)
			if _, err := g.AddEdge(u, v, weight); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
