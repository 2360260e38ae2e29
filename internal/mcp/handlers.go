package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JieUpup/MRGC/internal/coloring"
	"github.com/JieUpup/MRGC/internal/config"
	"github.com/JieUpup/MRGC/internal/constants"
	"github.com/JieUpup/MRGC/internal/experiment"
	"github.com/JieUpup/MRGC/internal/graph"
	"github.com/JieUpup/MRGC/internal/models"
	"github.com/JieUpup/MRGC/internal/pool"
	"github.com/JieUpup/MRGC/internal/store"
	"github.com/JieUpup/MRGC/internal/summary"
	"github.com/JieUpup/MRGC/internal/visualization"
)

// registerTools registers all mrgc MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "mrgc_run",
		Description: "Run the slot assignment experiment (MRGC, Random, RoundRobin, FullyGraph) and return per-strategy means",
	}, s.handleMrgcRun)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "mrgc_graph",
		Description: "Render one episode's conflict graph, optionally MST-reduced and slot-colored, as DOT (Graphviz) or JSON",
	}, s.handleMrgcGraph)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "mrgc_runs",
		Description: "List experiment runs stored by this server",
	}, s.handleMrgcRuns)
}

// auditTool records a tool invocation in the trace log.
func (s *Server) auditTool(tool string, start time.Time, err error, params map[string]any) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.logger.Debug("tool call", "tool", tool, "status", status, "duration", time.Since(start))

	event := map[string]any{
		"event":       "tool",
		"tool":        tool,
		"status":      status,
		"duration_ms": time.Since(start).Milliseconds(),
		"params":      params,
	}
	if err != nil {
		event["error"] = err.Error()
	}
	s.trace.Log(event)
}

// checkToolBounds rejects sizes a single tool call may not request.
func checkToolBounds(agents, episodes int) error {
	if agents > constants.MaxToolAgents {
		return fmt.Errorf("agents must be at most %d, got %d: %w", constants.MaxToolAgents, agents, models.ErrInvalidConfiguration)
	}
	if episodes > constants.MaxToolEpisodes {
		return fmt.Errorf("episodes must be at most %d, got %d: %w", constants.MaxToolEpisodes, episodes, models.ErrInvalidConfiguration)
	}
	return nil
}

// experimentConfig overlays the non-zero fields of args onto the server defaults.
func (s *Server) experimentConfig(args MrgcRunInput) config.ExperimentConfig {
	cfg := s.defaults
	if args.Agents != 0 {
		cfg.Agents = args.Agents
	}
	if args.Slots != 0 {
		cfg.Slots = args.Slots
	}
	if args.Episodes != 0 {
		cfg.Episodes = args.Episodes
	}
	if args.MaxEdges != 0 {
		cfg.MaxEdges = args.MaxEdges
	}
	if args.Seed != nil {
		cfg.Seed = *args.Seed
	}
	return cfg
}

// handleMrgcRun implements the mrgc_run tool.
func (s *Server) handleMrgcRun(ctx context.Context, req *sdk.CallToolRequest, args MrgcRunInput) (_ *sdk.CallToolResult, _ MrgcRunOutput, retErr error) {
	cfg := s.experimentConfig(args)
	start := time.Now()
	defer func() {
		s.auditTool("mrgc_run", start, retErr, map[string]any{
			"agents":    cfg.Agents,
			"slots":     cfg.Slots,
			"episodes":  cfg.Episodes,
			"max_edges": cfg.MaxEdges,
			"seed":      cfg.Seed,
		})
	}()

	if err := s.toolLimiters.Check("mrgc_run"); err != nil {
		return nil, MrgcRunOutput{}, err
	}
	if err := checkToolBounds(cfg.Agents, cfg.Episodes); err != nil {
		return nil, MrgcRunOutput{}, err
	}

	records, err := experiment.Run(ctx, cfg, experiment.Options{Logger: s.logger})
	if err != nil {
		return nil, MrgcRunOutput{}, fmt.Errorf("run experiment: %w", err)
	}

	means, err := summary.ByStrategy(records)
	if err != nil {
		return nil, MrgcRunOutput{}, fmt.Errorf("summarize run: %w", err)
	}

	runID, err := s.store.SaveRun(ctx, cfg, records)
	if err != nil {
		return nil, MrgcRunOutput{}, fmt.Errorf("store run: %w", err)
	}

	out := MrgcRunOutput{
		RunID:    runID,
		Agents:   cfg.Agents,
		Slots:    cfg.Slots,
		Episodes: cfg.Episodes,
		MaxEdges: cfg.MaxEdges,
		Seed:     cfg.Seed,
		Summary:  means,
	}
	if args.Records {
		out.Records = records
	}
	return nil, out, nil
}

// handleMrgcGraph implements the mrgc_graph tool.
func (s *Server) handleMrgcGraph(ctx context.Context, req *sdk.CallToolRequest, args MrgcGraphInput) (_ *sdk.CallToolResult, _ MrgcGraphOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool("mrgc_graph", start, retErr, map[string]any{
			"family":  args.Family,
			"episode": args.Episode,
			"mst":     args.MST,
			"color":   args.Color,
			"format":  args.Format,
		})
	}()

	if err := s.toolLimiters.Check("mrgc_graph"); err != nil {
		return nil, MrgcGraphOutput{}, err
	}

	familyName := args.Family
	if familyName == "" {
		familyName = string(pool.FamilyRandom)
	}
	family, err := pool.ParseFamily(familyName)
	if err != nil {
		return nil, MrgcGraphOutput{}, err
	}

	formatName := args.Format
	if formatName == "" {
		formatName = string(visualization.FormatDOT)
	}
	format, err := visualization.ParseFormat(formatName)
	if err != nil {
		return nil, MrgcGraphOutput{}, err
	}

	cfg := s.experimentConfig(MrgcRunInput{Agents: args.Agents, MaxEdges: args.MaxEdges, Seed: args.Seed})
	if err := checkToolBounds(cfg.Agents, 0); err != nil {
		return nil, MrgcGraphOutput{}, err
	}
	g, err := pool.Episode(family, args.Episode, cfg.Agents, cfg.MaxEdges, cfg.Seed)
	if err != nil {
		return nil, MrgcGraphOutput{}, fmt.Errorf("build graph: %w", err)
	}

	g, c := shapeGraph(g, args.MST, args.Color)

	out := MrgcGraphOutput{
		Format:     string(format),
		NodeCount:  g.NumNodes(),
		EdgeCount:  g.NumEdges(),
		Components: len(g.Components()),
		Forest:     g.IsForest(),
	}
	if c != nil {
		out.Slots = c.ColorCount()
	}

	switch format {
	case visualization.FormatDOT:
		dot, err := visualization.RenderDOT(g, c)
		if err != nil {
			return nil, MrgcGraphOutput{}, fmt.Errorf("render DOT: %w", err)
		}
		out.Graph = dot
	case visualization.FormatJSON:
		result, err := visualization.RenderJSON(g, c)
		if err != nil {
			return nil, MrgcGraphOutput{}, fmt.Errorf("render JSON: %w", err)
		}
		out.Graph = result
	}
	return nil, out, nil
}

// shapeGraph optionally reduces g to its minimum spanning tree and colors it.
func shapeGraph(g *graph.Graph, mst, color bool) (*graph.Graph, coloring.Coloring) {
	if mst {
		g = g.MinimumSpanningTree()
	}
	if !color {
		return g, nil
	}
	return g, coloring.GreedyLargestFirst(g)
}

// handleMrgcRuns implements the mrgc_runs tool.
func (s *Server) handleMrgcRuns(ctx context.Context, req *sdk.CallToolRequest, args MrgcRunsInput) (_ *sdk.CallToolResult, _ MrgcRunsOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool("mrgc_runs", start, retErr, nil)
	}()

	if err := s.toolLimiters.Check("mrgc_runs"); err != nil {
		return nil, MrgcRunsOutput{}, err
	}

	runs, err := s.store.ListRuns(ctx)
	if err != nil {
		return nil, MrgcRunsOutput{}, fmt.Errorf("list runs: %w", err)
	}
	if runs == nil {
		runs = []store.Run{}
	}
	return nil, MrgcRunsOutput{Runs: runs, Count: len(runs)}, nil
}
