// Package server exposes the query engine over the Model Context Protocol
// on stdio. It registers two tools: query, which evaluates an extended
// JSONPath expression against a JSON file, and filter, which filters an
// array inside a JSON file with a per-element condition.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/oovz/mcp-json-reader/internal/config"
	"github.com/oovz/mcp-json-reader/internal/document"
	"github.com/oovz/mcp-json-reader/internal/query"
	"github.com/oovz/mcp-json-reader/internal/ratelimit"
)

const (
	serverName    = "json-reader"
	serverVersion = "0.1.0"
)

// Server wires the document loader and the query engine to an MCP stdio
// transport.
type Server struct {
	config    *config.Config
	loader    *document.Loader
	limiter   *ratelimit.Limiter
	mcp       *mcpserver.MCPServer
	errOutput io.Writer
}

// New creates a Server from a validated configuration.
func New(cfg *config.Config) *Server {
	s := &Server{
		config:    cfg,
		loader:    document.NewLoader(cfg.Roots, cfg.Cache),
		limiter:   ratelimit.New(cfg.RateLimit),
		errOutput: os.Stderr,
	}
	s.mcp = s.buildMCPServer()
	return s
}

// SetErrorOutput redirects debug and protocol logging, mainly for tests.
func (s *Server) SetErrorOutput(w io.Writer) {
	s.errOutput = w
}

func (s *Server) errorWriter() io.Writer {
	if s.errOutput == nil {
		return io.Discard
	}
	return s.errOutput
}

func (s *Server) logf(format string, args ...any) {
	if !s.config.Debug {
		return
	}
	_, _ = fmt.Fprintf(s.errorWriter(), format, args...)
}

func (s *Server) buildMCPServer() *mcpserver.MCPServer {
	srv := mcpserver.NewMCPServer(serverName, serverVersion,
		mcpserver.WithToolCapabilities(false),
	)

	queryTool := mcp.NewTool("query",
		mcp.WithDescription("Evaluate a JSONPath expression, optionally ending in an extension operator, against a JSON file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the JSON file to read"),
		),
		mcp.WithString("jsonPath",
			mcp.Required(),
			mcp.Description("JSONPath expression; extension operators such as .sum(field), .sort(field), .format('YYYY-MM-DD') or [start:end] may follow the path"),
		),
	)
	srv.AddTool(queryTool, s.handleQuery)

	filterTool := mcp.NewTool("filter",
		mcp.WithDescription("Filter the array at a JSONPath inside a JSON file with a per-element condition"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the JSON file to read"),
		),
		mcp.WithString("jsonPath",
			mcp.Required(),
			mcp.Description("JSONPath of the array to filter, $ for the document itself"),
		),
		mcp.WithString("condition",
			mcp.Required(),
			mcp.Description("Per-element condition such as @.price > 10 or @.title.contains('Moby')"),
		),
	)
	srv.AddTool(filterTool, s.handleFilter)

	return srv
}

// Serve runs the server on stdio until the context is cancelled or stdin
// closes.
func (s *Server) Serve(ctx context.Context) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(s.errorWriter(), "", log.LstdFlags))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	id := uuid.NewString()

	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	expression, err := request.RequireString("jsonPath")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logf("[%s] query path=%s expression=%s\n", id, path, expression)

	data, err := s.loader.Load(path)
	if err != nil {
		s.logf("[%s] load failed: %v\n", id, err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := query.Evaluate(data, expression)
	if err != nil {
		s.logf("[%s] evaluate failed: %v\n", id, err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(id, start, result)
}

func (s *Server) handleFilter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	id := uuid.NewString()

	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	arrayPath, err := request.RequireString("jsonPath")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	condition, err := request.RequireString("condition")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logf("[%s] filter path=%s array=%s condition=%s\n", id, path, arrayPath, condition)

	data, err := s.loader.Load(path)
	if err != nil {
		s.logf("[%s] load failed: %v\n", id, err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := query.Filter(data, arrayPath, condition)
	if err != nil {
		s.logf("[%s] filter failed: %v\n", id, err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(id, start, result)
}

// textResult encodes a value as compact JSON for the tool response.
func (s *Server) textResult(id string, start time.Time, value any) (*mcp.CallToolResult, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		s.logf("[%s] encode failed: %v\n", id, err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}

	s.logf("[%s] result=%s elapsed=%s\n", id, encoded, time.Since(start))
	return mcp.NewToolResultText(string(encoded)), nil
}
