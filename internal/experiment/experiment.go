// Package experiment runs the four slot assignment strategies over a
// sequence of episodes and collects one metrics record per strategy per
// episode.
package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JieUpup/MRGC/internal/coloring"
	"github.com/JieUpup/MRGC/internal/config"
	"github.com/JieUpup/MRGC/internal/execution"
	"github.com/JieUpup/MRGC/internal/logging"
	"github.com/JieUpup/MRGC/internal/models"
	"github.com/JieUpup/MRGC/internal/pool"
	"github.com/JieUpup/MRGC/internal/rng"
)

// Options carries the optional collaborators of a run. The zero value is
// usable.
type Options struct {
	// Logger receives per-episode debug lines. Nil discards them.
	Logger *slog.Logger

	// Trace receives one event per metrics record. Nil disables tracing.
	Trace *logging.TraceLogger
}

// Run executes cfg.Episodes episodes. Episode i runs MRGC on random-pool
// graph i, Random and RoundRobin on the agent count alone, and FullyGraph
// on fully-connected-pool graph i, in that order.
//
// The configuration is validated before any graph is built. Records come
// back episode-major, strategy-minor. Cancelling ctx stops the run between
// episodes and discards the records gathered so far.
func Run(ctx context.Context, cfg config.ExperimentConfig, opts Options) ([]models.Metrics, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	randomPool, err := pool.Generate(pool.FamilyRandom, cfg.Episodes, cfg.Agents, cfg.MaxEdges, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("building random pool: %w", err)
	}
	fullyPool, err := pool.Generate(pool.FamilyFully, cfg.Episodes, cfg.Agents, cfg.MaxEdges, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("building fully-connected pool: %w", err)
	}
	logger.Debug("pools built", "episodes", cfg.Episodes, "agents", cfg.Agents, "seed", cfg.Seed)

	colorRand := rng.NewStream(cfg.Seed, rng.StreamColoring)
	delayRand := rng.NewStream(cfg.Seed, rng.StreamDelay)

	records := make([]models.Metrics, 0, cfg.Episodes*len(models.Strategies))
	for episode := 0; episode < cfg.Episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ep := coloring.Episode{
			RandomGraph: randomPool[episode],
			FullyGraph:  fullyPool[episode],
			Agents:      cfg.Agents,
			Slots:       cfg.Slots,
			Rand:        colorRand,
		}
		logger.Log(ctx, logging.LevelTrace, "episode graphs",
			"episode", episode,
			"random_edges", ep.RandomGraph.NumEdges(),
			"random_components", len(ep.RandomGraph.Components()),
			"fully_edges", ep.FullyGraph.NumEdges())

		for _, strategy := range models.Strategies {
			c, err := coloring.Assign(strategy, ep)
			if err != nil {
				return nil, fmt.Errorf("episode %d: assigning %s: %w", episode, strategy, err)
			}
			logger.Log(ctx, logging.LevelTrace, "slot occupancy",
				"episode", episode,
				"strategy", string(strategy),
				"slots", execution.Occupancy(c))
			outcome, err := execution.Simulate(c, cfg.Slots, delayRand)
			if err != nil {
				return nil, fmt.Errorf("episode %d: simulating %s: %w", episode, strategy, err)
			}
			record := outcome.Record(episode, strategy)
			records = append(records, record)
			opts.Trace.LogRecord(record)
		}

		logger.Debug("episode complete", "episode", episode, "records", len(records))
	}

	return records, nil
}
