package search

import (
	"sync"

	"github.com/johnzfitch/llmx/internal/config"
	"github.com/johnzfitch/llmx/internal/index"
	"github.com/johnzfitch/llmx/internal/llmerr"
)

// Options selects retrieval behavior for one query.
type Options struct {
	// UseSemantic enables vector scoring; it requires QueryEmbedding and an
	// index embedding block, and fails loudly when either is missing.
	UseSemantic bool
	// Strategy picks the fusion algorithm for semantic queries.
	Strategy Strategy
	// Weights applies to linear fusion.
	Weights Weights
	// RRFK is the reciprocal-rank smoothing constant.
	RRFK int
	// QueryEmbedding is the unit query vector for semantic scoring.
	QueryEmbedding []float32
	// MaxTokens bounds inline content; 0 returns ids only.
	MaxTokens int
	// NonStrictBudget lets smaller later chunks fill remaining budget after
	// the first overflow instead of truncating the rest of the list.
	NonStrictBudget bool
	// Approximate consults the HNSW accelerator for the vector side when no
	// filter is set.
	Approximate bool
}

// DefaultOptions returns the spec defaults.
func DefaultOptions() Options {
	return Options{
		Strategy:  StrategyLinear,
		Weights:   DefaultWeights(),
		RRFK:      DefaultRRFK,
		MaxTokens: config.DefaultMaxTokens,
	}
}

// Engine performs searches over one immutable IndexFile. It is safe for
// concurrent readers; the optional ANN accelerator is built lazily once.
type Engine struct {
	idx     *index.IndexFile
	annOnce sync.Once
	ann     *ANN
}

// NewEngine wraps an IndexFile for searching. Derived tables are built here
// so concurrent searches only ever read them.
func NewEngine(idx *index.IndexFile) *Engine {
	idx.EnsureDerived()
	return &Engine{idx: idx}
}

// Index returns the underlying IndexFile.
func (e *Engine) Index() *index.IndexFile {
	return e.idx
}

// Search runs a query with filters and a result limit. A query that
// tokenizes to nothing yields an empty response, not an error; missing
// embeddings or mismatched dimensions fail the call.
func (e *Engine) Search(query string, f *Filters, limit int, opts Options) (*Response, error) {
	if limit <= 0 {
		limit = config.DefaultLimit
	}
	if opts.MaxTokens < 0 {
		return nil, llmerr.InvalidInput("max_tokens must be >= 0")
	}

	var ranked []Result
	resp := &Response{Strategy: StrategyBM25}

	if !opts.UseSemantic {
		ranked = BM25(e.idx, query, f, limit)
	} else {
		if opts.QueryEmbedding == nil {
			return nil, llmerr.InvalidInput("semantic search requires a query embedding")
		}

		strategy := opts.Strategy
		if strategy == "" || strategy == StrategyBM25 {
			strategy = StrategyLinear
		}

		// Both sides retrieve twice the requested depth before fusion.
		candidates := 2 * limit

		bmList := BM25(e.idx, query, f, candidates)
		vecList, err := e.vectorSide(f, opts, candidates)
		if err != nil {
			return nil, err
		}

		switch strategy {
		case StrategyLinear:
			w := opts.Weights
			if w == (Weights{}) {
				w = DefaultWeights()
			}
			if !w.Valid() {
				return nil, llmerr.InvalidInput("fusion weights must lie in [0,1] and sum to 1")
			}
			ranked = FuseLinear(bmList, vecList, w, limit)
			resp.Weights = w
		case StrategyRRF:
			k := opts.RRFK
			if k <= 0 {
				k = DefaultRRFK
			}
			ranked = FuseRRF(bmList, vecList, k, limit)
			resp.RRFK = k
		default:
			return nil, llmerr.Newf(llmerr.CodeInvalidInput, "unknown hybrid strategy %q", strategy)
		}
		resp.Strategy = strategy
	}

	results, truncated := ApplyBudget(e.idx, ranked, opts.MaxTokens, !opts.NonStrictBudget)
	resp.Results = results
	resp.TruncatedIDs = truncated
	return resp, nil
}

// vectorSide runs the vector retrieval, using the ANN accelerator only when
// asked for and only without filters (pre-filtering requires the exact
// scan).
func (e *Engine) vectorSide(f *Filters, opts Options, limit int) ([]Result, error) {
	if opts.Approximate && f.Empty() {
		if !e.idx.HasEmbeddings() {
			return nil, llmerr.EmbeddingsUnavailable()
		}
		e.annOnce.Do(func() { e.ann = BuildANN(e.idx) })
		if e.ann != nil {
			return e.ann.Search(e.idx, opts.QueryEmbedding, limit)
		}
	}
	return Vector(e.idx, opts.QueryEmbedding, f, limit)
}
