// Package search implements scored retrieval over an IndexFile: BM25
// keyword search, vector similarity, hybrid fusion, and the token budgeter
// that bounds inline content in responses.
package search

import (
	"strings"

	"github.com/johnzfitch/llmx/internal/config"
)

// SnippetChars is the length of the whitespace-normalized snippet.
const SnippetChars = 200

// Strategy selects the hybrid fusion algorithm.
type Strategy string

const (
	// StrategyBM25 is keyword-only retrieval.
	StrategyBM25 Strategy = "bm25"
	// StrategyLinear fuses normalized BM25 and clamped vector scores.
	StrategyLinear Strategy = "linear"
	// StrategyRRF fuses by reciprocal rank.
	StrategyRRF Strategy = "rrf"
)

// Weights are the linear fusion weights. They must lie in [0,1] and sum to
// 1 within 1e-6.
type Weights struct {
	BM25     float64
	Semantic float64
}

// DefaultWeights returns the even split.
func DefaultWeights() Weights {
	return Weights{BM25: config.DefaultBM25Weight, Semantic: config.DefaultSemanticWeight}
}

// Valid reports whether the weights satisfy the fusion constraints.
func (w Weights) Valid() bool {
	sum := w.BM25 + w.Semantic
	return w.BM25 >= 0 && w.BM25 <= 1 &&
		w.Semantic >= 0 && w.Semantic <= 1 &&
		sum >= 1-1e-6 && sum <= 1+1e-6
}

// Result is one scored hit.
type Result struct {
	ChunkID     string   `json:"chunk_id"`
	Ref         string   `json:"ref"`
	Score       float64  `json:"score"`
	Path        string   `json:"path"`
	StartLine   int      `json:"start_line"`
	EndLine     int      `json:"end_line"`
	Snippet     string   `json:"snippet"`
	HeadingPath []string `json:"heading_path"`

	// Content is the inline chunk content, present only while the token
	// budget allows. Truncated marks results whose content was withheld.
	Content   string `json:"content,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

// Response is a complete search response.
type Response struct {
	Results []Result `json:"results"`
	// TruncatedIDs lists chunk ids whose inline content was withheld by the
	// token budget. The results themselves are never dropped.
	TruncatedIDs []string `json:"truncated_ids,omitempty"`

	// Strategy metadata: what produced this ranking.
	Strategy Strategy `json:"strategy"`
	Weights  Weights  `json:"weights,omitempty"`
	RRFK     int      `json:"rrf_k,omitempty"`
}

// Snippet normalizes whitespace and truncates to SnippetChars characters.
func Snippet(content string) string {
	normalized := strings.Join(strings.Fields(content), " ")
	runes := []rune(normalized)
	if len(runes) > SnippetChars {
		return string(runes[:SnippetChars])
	}
	return normalized
}
