package search

import (
	"sort"

	"github.com/johnzfitch/llmx/internal/index"
	"github.com/johnzfitch/llmx/internal/llmerr"
)

// Vector ranks chunks by dot product against a unit query vector and
// returns up to limit results sorted by similarity descending, ties broken
// by chunk id ascending. Filtering happens before scoring. The engine never
// silently falls back to BM25: an absent embedding block or a dimension
// mismatch is the caller's problem to handle.
func Vector(idx *index.IndexFile, query []float32, f *Filters, limit int) ([]Result, error) {
	if !idx.HasEmbeddings() {
		return nil, llmerr.EmbeddingsUnavailable()
	}
	dim := idx.EmbeddingDim()
	if len(query) != dim {
		return nil, llmerr.DimensionMismatch(dim, len(query))
	}

	type scored struct {
		pos   int
		score float64
	}
	var hits []scored
	for i := range idx.Chunks {
		if !f.Match(&idx.Chunks[i]) {
			continue
		}
		hits = append(hits, scored{pos: i, score: dot(query, idx.Embeddings[i])})
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].score != hits[b].score {
			return hits[a].score > hits[b].score
		}
		return idx.Chunks[hits[a].pos].ID < idx.Chunks[hits[b].pos].ID
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		results = append(results, toResult(idx, idx.Chunks[h.pos].ID, h.score))
	}
	return results, nil
}

// dot accumulates in float64 for a stable ordering.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
