package coloring

import (
	"fmt"

	"github.com/JieUpup/MRGC/internal/graph"
	"github.com/JieUpup/MRGC/internal/models"
	"github.com/JieUpup/MRGC/internal/rng"
)

// Episode holds everything a strategy may draw on for one episode.
type Episode struct {
	RandomGraph *graph.Graph // random-degree pool entry, used by MRGC
	FullyGraph  *graph.Graph // fully-connected pool entry, used by FullyGraph
	Agents      int
	Slots       int
	Rand        *rng.Source // draws for the Random strategy
}

// Assign runs the named strategy on ep.
func Assign(strategy models.Strategy, ep Episode) (Coloring, error) {
	switch strategy {
	case models.StrategyMRGC:
		if ep.RandomGraph == nil {
			return nil, fmt.Errorf("%s needs a random-degree graph", strategy)
		}
		return MRGC(ep.RandomGraph), nil
	case models.StrategyRandom:
		if ep.Rand == nil {
			return nil, fmt.Errorf("%s needs a random source", strategy)
		}
		return Random(ep.Agents, ep.Slots, ep.Rand)
	case models.StrategyRoundRobin:
		return RoundRobin(ep.Agents, ep.Slots)
	case models.StrategyFullyGraph:
		if ep.FullyGraph == nil {
			return nil, fmt.Errorf("%s needs a fully-connected graph", strategy)
		}
		return FullyGraph(ep.FullyGraph), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q: %w", strategy, models.ErrInvalidConfiguration)
	}
}
