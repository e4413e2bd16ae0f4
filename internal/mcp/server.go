// Package mcp implements the Model Context Protocol server for llmx. It
// exposes four tools (search, get_chunk, outline, symbols) over a single
// index handle. The stdio transport is inherently serial, but the handle
// still serializes writers against readers so a watcher-driven update can
// swap the index mid-session.
package mcp

import (
	"context"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/johnzfitch/llmx/internal/chunk"
	"github.com/johnzfitch/llmx/internal/llmerr"
	"github.com/johnzfitch/llmx/pkg/engine"
	"github.com/johnzfitch/llmx/pkg/version"
)

// Server bridges MCP clients with the llmx engine.
type Server struct {
	mcp    *mcp.Server
	handle *engine.Handle
	logger *slog.Logger
}

// NewServer creates the server over an index handle.
func NewServer(handle *engine.Handle) *Server {
	s := &Server{
		handle: handle,
		logger: slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "llmx",
			Version: version.Version,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Handle returns the index handle, letting a watcher swap new indexes in.
func (s *Server) Handle() *engine.Handle {
	return s.handle
}

// registerTools registers the four tools.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search",
		Description: "Search the indexed codebase. Returns ranked chunks with refs, provenance, and inline content up to the token budget. Supports keyword (BM25) and hybrid semantic ranking with path, kind, heading, and symbol filters.",
	}, s.handleSearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_chunk",
		Description: "Fetch one chunk by its ref (c0001 style) or full id, including full content and provenance.",
	}, s.handleGetChunk)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "outline",
		Description: "List the heading structure of an indexed file (markdown or HTML).",
	}, s.handleOutline)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "symbols",
		Description: "List the declared symbols of an indexed source file.",
	}, s.handleSymbols)

	s.logger.Info("MCP tools registered", slog.Int("count", 4))
}

// handleSearch implements the search tool.
func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchOutput{}, NewInvalidParamsError("query is required")
	}

	filters := &engine.Filters{
		PathPrefix:    input.PathPrefix,
		Kind:          chunk.Kind(input.Kind),
		HeadingPrefix: input.HeadingPrefix,
		SymbolPrefix:  input.SymbolPrefix,
	}

	opts := engine.DefaultSearchOptions()
	if input.MaxTokens != nil {
		opts.MaxTokens = *input.MaxTokens
	}
	if input.Semantic {
		opts.UseSemantic = true
		opts.Strategy = searchStrategy(input.Strategy)

		idx := s.handle.Snapshot()
		if !idx.HasEmbeddings() {
			return nil, SearchOutput{}, MapError(llmerr.EmbeddingsUnavailable())
		}
		// The query is embedded with the same offline model that built the
		// block, so dimensions always agree.
		qe, err := queryEmbedding(idx, input.Query)
		if err != nil {
			return nil, SearchOutput{}, MapError(err)
		}
		opts.QueryEmbedding = qe
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	resp, err := s.handle.Search(input.Query, filters, limit, opts)
	if err != nil {
		s.logger.Warn("search failed", slog.String("error", err.Error()))
		return nil, SearchOutput{}, MapError(err)
	}

	out := SearchOutput{
		Strategy:     string(resp.Strategy),
		TruncatedIDs: resp.TruncatedIDs,
		Results:      make([]SearchResultOutput, 0, len(resp.Results)),
	}
	for _, r := range resp.Results {
		out.Results = append(out.Results, SearchResultOutput{
			Ref:         r.Ref,
			Path:        r.Path,
			Lines:       [2]int{r.StartLine, r.EndLine},
			Score:       r.Score,
			Snippet:     r.Snippet,
			HeadingPath: r.HeadingPath,
			Content:     r.Content,
		})
	}
	return nil, out, nil
}

// handleGetChunk implements the get_chunk tool.
func (s *Server) handleGetChunk(ctx context.Context, req *mcp.CallToolRequest, input GetChunkInput) (
	*mcp.CallToolResult,
	GetChunkOutput,
	error,
) {
	if input.Ref == "" {
		return nil, GetChunkOutput{}, NewInvalidParamsError("ref is required")
	}

	idx := s.handle.Snapshot()

	var c *engine.Chunk
	var err error
	if strings.HasPrefix(input.Ref, "c") && len(input.Ref) < 64 {
		c, err = engine.GetChunkByRef(idx, input.Ref)
	} else {
		c, err = engine.GetChunk(idx, input.Ref)
	}
	if err != nil {
		return nil, GetChunkOutput{}, MapError(err)
	}

	return nil, GetChunkOutput{
		Ref:         c.Ref,
		ID:          c.ID,
		Slug:        c.Slug,
		Path:        c.Path,
		Kind:        string(c.Kind),
		Lines:       [2]int{c.StartLine, c.EndLine},
		HeadingPath: c.HeadingPath,
		Symbol:      c.Symbol,
		Address:     c.Address,
		Content:     c.Content,
	}, nil
}

// handleOutline implements the outline tool.
func (s *Server) handleOutline(ctx context.Context, req *mcp.CallToolRequest, input OutlineInput) (
	*mcp.CallToolResult,
	OutlineOutput,
	error,
) {
	if input.Path == "" {
		return nil, OutlineOutput{}, NewInvalidParamsError("path is required")
	}
	idx := s.handle.Snapshot()
	return nil, OutlineOutput{
		Path:     input.Path,
		Headings: engine.ListOutline(idx, input.Path),
	}, nil
}

// handleSymbols implements the symbols tool.
func (s *Server) handleSymbols(ctx context.Context, req *mcp.CallToolRequest, input SymbolsInput) (
	*mcp.CallToolResult,
	SymbolsOutput,
	error,
) {
	if input.Path == "" {
		return nil, SymbolsOutput{}, NewInvalidParamsError("path is required")
	}
	idx := s.handle.Snapshot()
	return nil, SymbolsOutput{
		Path:    input.Path,
		Symbols: engine.ListSymbols(idx, input.Path),
	}, nil
}

// Serve runs the server over stdio until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting MCP server", slog.String("transport", "stdio"))
	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && err != context.Canceled {
		s.logger.Error("MCP server stopped", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("MCP server stopped")
	return nil
}
