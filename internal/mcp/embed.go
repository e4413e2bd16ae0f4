package mcp

import (
	"strings"

	"github.com/johnzfitch/llmx/internal/embed"
	"github.com/johnzfitch/llmx/internal/llmerr"
	"github.com/johnzfitch/llmx/internal/search"
	"github.com/johnzfitch/llmx/pkg/engine"
)

// searchStrategy parses a client strategy string, defaulting to linear.
func searchStrategy(s string) search.Strategy {
	switch strings.ToLower(s) {
	case "rrf":
		return search.StrategyRRF
	default:
		return search.StrategyLinear
	}
}

// queryEmbedding produces the query vector for a semantic search. Queries
// can only be embedded locally when the index block came from the offline
// static embedder; an index embedded by an external model needs the query
// vector from that same model, which MCP clients do not carry.
func queryEmbedding(idx *engine.IndexFile, query string) ([]float32, error) {
	if !strings.HasPrefix(idx.EmbeddingModel, "static-") {
		return nil, llmerr.Newf(llmerr.CodeInvalidInput,
			"index embeddings come from %q; semantic search over MCP requires a static-embedded index", idx.EmbeddingModel)
	}
	return embed.NewStatic(idx.EmbeddingDim()).Embed(query)
}
