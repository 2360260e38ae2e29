package mcp

import (
	"github.com/JieUpup/MRGC/internal/models"
	"github.com/JieUpup/MRGC/internal/store"
)

// MrgcRunInput defines the input for the mrgc_run tool. Zero values fall
// back to the server's defaults.
type MrgcRunInput struct {
	Agents   int    `json:"agents,omitempty" jsonschema:"Number of agents (graph nodes), at most 1000"`
	Slots    int    `json:"slots,omitempty" jsonschema:"Number of shared resource slots"`
	Episodes int    `json:"episodes,omitempty" jsonschema:"Number of simulation rounds, at most 1000"`
	MaxEdges int    `json:"max_edges,omitempty" jsonschema:"Largest random degree per node; must be below agents"`
	Seed     *int64 `json:"seed,omitempty" jsonschema:"Base seed for graph generation"`
	Records  bool   `json:"records,omitempty" jsonschema:"Include every per-episode record in the output (default: false)"`
}

// MrgcRunOutput defines the output for the mrgc_run tool.
type MrgcRunOutput struct {
	RunID    int64               `json:"run_id" jsonschema:"ID of the stored run"`
	Agents   int                 `json:"agents" jsonschema:"Agent count the run used"`
	Slots    int                 `json:"slots" jsonschema:"Slot count the run used"`
	Episodes int                 `json:"episodes" jsonschema:"Episode count the run used"`
	MaxEdges int                 `json:"max_edges" jsonschema:"Max edges the run used"`
	Seed     int64               `json:"seed" jsonschema:"Base seed the run used"`
	Summary  []models.SummaryRow `json:"summary" jsonschema:"Per-strategy means in execution order"`
	Records  []models.Metrics    `json:"records,omitempty" jsonschema:"Per-episode records, when requested"`
}

// MrgcGraphInput defines the input for the mrgc_graph tool.
type MrgcGraphInput struct {
	Family   string `json:"family,omitempty" jsonschema:"Graph family: 'random' or 'fully' (default: random)"`
	Episode  int    `json:"episode,omitempty" jsonschema:"Episode whose graph to render (default: 0)"`
	Agents   int    `json:"agents,omitempty" jsonschema:"Number of agents, at most 1000 (default: server default)"`
	MaxEdges int    `json:"max_edges,omitempty" jsonschema:"Largest random degree per node (default: server default)"`
	Seed     *int64 `json:"seed,omitempty" jsonschema:"Base seed (default: server default)"`
	MST      bool   `json:"mst,omitempty" jsonschema:"Render the minimum spanning tree instead of the full graph"`
	Color    bool   `json:"color,omitempty" jsonschema:"Fill agents with their greedy slot assignment"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: 'dot' or 'json' (default: dot)"`
}

// MrgcGraphOutput defines the output for the mrgc_graph tool.
type MrgcGraphOutput struct {
	Format     string      `json:"format" jsonschema:"Format of the rendered graph"`
	Graph      interface{} `json:"graph" jsonschema:"Rendered graph (DOT string or JSON object)"`
	NodeCount  int         `json:"node_count" jsonschema:"Number of agents"`
	EdgeCount  int         `json:"edge_count" jsonschema:"Number of conflict edges"`
	Slots      int         `json:"slots,omitempty" jsonschema:"Distinct slots used when colored"`
	Components int         `json:"components" jsonschema:"Number of connected components; MRGC colors one spanning tree per component"`
	Forest     bool        `json:"forest" jsonschema:"Whether the rendered graph has no cycles"`
}

// MrgcRunsInput defines the input for the mrgc_runs tool.
type MrgcRunsInput struct{}

// MrgcRunsOutput defines the output for the mrgc_runs tool.
type MrgcRunsOutput struct {
	Runs  []store.Run `json:"runs" jsonschema:"Stored runs, oldest first"`
	Count int         `json:"count" jsonschema:"Number of stored runs"`
}
