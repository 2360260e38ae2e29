// Package mcp provides an MCP (Model Context Protocol) server for mrgc.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JieUpup/MRGC/internal/config"
	"github.com/JieUpup/MRGC/internal/logging"
	"github.com/JieUpup/MRGC/internal/ratelimit"
	"github.com/JieUpup/MRGC/internal/store"
)

// Server wraps the MCP SDK server and exposes the experiment runner as tools.
type Server struct {
	server       *sdk.Server
	store        store.ResultStore
	defaults     config.ExperimentConfig
	toolLimiters ratelimit.ToolLimiters
	logger       *slog.Logger
	trace        *logging.TraceLogger
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "mrgc")
	Version string // Server version

	// Defaults fill experiment parameters a tool call leaves unset.
	Defaults config.ExperimentConfig

	// DBPath selects a SQLite result store. Empty keeps runs in memory.
	DBPath string

	Logger *slog.Logger
	Trace  *logging.TraceLogger
}

// NewServer creates a new MCP server with mrgc tools.
func NewServer(cfg *Config) (*Server, error) {
	var resultStore store.ResultStore
	if cfg.DBPath != "" {
		sqliteStore, err := store.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create result store: %w", err)
		}
		resultStore = sqliteStore
	} else {
		resultStore = store.NewInMemoryStore()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			logger.Debug("mcp client initialized")
		},
	})

	s := &Server{
		server:       mcpServer,
		store:        resultStore,
		defaults:     cfg.Defaults,
		toolLimiters: ratelimit.NewToolLimiters(),
		logger:       logger,
		trace:        cfg.Trace,
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.store.Close()

	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}
