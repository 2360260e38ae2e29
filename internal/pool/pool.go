// Package pool builds the per-episode graph sequences an experiment runs on.
package pool

import (
	"fmt"

	"github.com/JieUpup/MRGC/internal/graph"
	"github.com/JieUpup/MRGC/internal/models"
)

// Family selects which generator a pool is built from.
type Family string

const (
	FamilyRandom Family = "random" // random-degree graphs
	FamilyFully  Family = "fully"  // complete graphs
)

// ParseFamily maps a family name to a Family.
func ParseFamily(name string) (Family, error) {
	switch f := Family(name); f {
	case FamilyRandom, FamilyFully:
		return f, nil
	default:
		return "", fmt.Errorf("unknown graph family %q (valid: random, fully): %w", name, models.ErrInvalidConfiguration)
	}
}

// Generate returns poolSize graphs of the given family. Graph i is built
// with seed baseSeed+i, so any single episode can be regenerated on its own.
// maxEdges is ignored for FamilyFully.
func Generate(family Family, poolSize, numAgents, maxEdges int, baseSeed int64) ([]*graph.Graph, error) {
	var build func(seed int64) (*graph.Graph, error)
	switch family {
	case FamilyRandom:
		build = func(seed int64) (*graph.Graph, error) {
			return graph.NewRandom(numAgents, maxEdges, seed)
		}
	case FamilyFully:
		build = func(seed int64) (*graph.Graph, error) {
			return graph.NewFullyConnected(numAgents, seed)
		}
	default:
		return nil, fmt.Errorf("unknown graph family %q: %w", family, models.ErrInvalidConfiguration)
	}
	if poolSize < 0 {
		return nil, fmt.Errorf("pool size must be non-negative, got %d: %w", poolSize, models.ErrInvalidConfiguration)
	}

	graphs := make([]*graph.Graph, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		g, err := build(baseSeed + int64(i))
		if err != nil {
			return nil, fmt.Errorf("building %s graph %d: %w", family, i, err)
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}

// Episode regenerates the single graph Generate would place at index
// episode.
func Episode(family Family, episode, numAgents, maxEdges int, baseSeed int64) (*graph.Graph, error) {
	if episode < 0 {
		return nil, fmt.Errorf("episode must be non-negative, got %d: %w", episode, models.ErrInvalidConfiguration)
	}
	graphs, err := Generate(family, 1, numAgents, maxEdges, baseSeed+int64(episode))
	if err != nil {
		return nil, err
	}
	return graphs[0], nil
}
