// Package constants provides named constants used throughout the MRGC codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Experiment defaults, matching the reference experiment setup.
const (
	// DefaultAgents is the number of agents in each conflict graph.
	DefaultAgents = 20

	// DefaultSlots is the number of shared resource slots.
	DefaultSlots = 5

	// DefaultEpisodes is the number of simulation rounds per run.
	DefaultEpisodes = 10

	// DefaultMaxEdges is the maximum random degree drawn per node.
	DefaultMaxEdges = 3

	// DefaultSeed is the base seed for graph reproducibility.
	DefaultSeed = 42

	// DefaultOutputPath is where the run command writes its CSV.
	DefaultOutputPath = "output/results.csv"

	// DefaultSummaryPath is where the summarize command writes its CSV.
	DefaultSummaryPath = "summary_results_edge.csv"
)

// Conflict edge weights are drawn uniformly from [MinEdgeWeight, MaxEdgeWeight].
const (
	MinEdgeWeight = 1
	MaxEdgeWeight = 10
)

// Per-slot scheduling overhead is drawn uniformly from [MinSlotDelay, MaxSlotDelay].
const (
	MinSlotDelay = 1
	MaxSlotDelay = 5
)

// SummaryPrecision is the number of decimals kept in aggregated means.
const SummaryPrecision = 2

// Upper bounds on MCP tool parameters. A fully-connected graph holds
// n(n-1)/2 edges and a run keeps one per episode.
const (
	MaxToolAgents   = 1000
	MaxToolEpisodes = 1000
)
