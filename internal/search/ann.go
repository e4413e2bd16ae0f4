package search

import (
	"sort"

	"github.com/coder/hnsw"

	"github.com/johnzfitch/llmx/internal/index"
	"github.com/johnzfitch/llmx/internal/llmerr"
)

// ANN is an opt-in approximate accelerator over the embedding block, built
// once per IndexFile. The exact scan in Vector remains the default and the
// reference behavior; ANN trades exactness for speed on large unfiltered
// corpora and is only consulted when the caller asks for it.
type ANN struct {
	graph *hnsw.Graph[int]
	dim   int
}

// BuildANN constructs the HNSW graph over the index embeddings. Returns nil
// when the index has no embedding block.
func BuildANN(idx *index.IndexFile) *ANN {
	if !idx.HasEmbeddings() {
		return nil
	}

	g := hnsw.NewGraph[int]()
	g.Distance = hnsw.CosineDistance
	g.M = 16
	g.EfSearch = 48
	g.Ml = 0.25

	for i, v := range idx.Embeddings {
		g.Add(hnsw.MakeNode(i, v))
	}

	return &ANN{graph: g, dim: idx.EmbeddingDim()}
}

// Search returns up to limit approximate neighbors. Scores are exact dot
// products recomputed for the returned candidates, so ties order the same
// way as the exact scan.
func (a *ANN) Search(idx *index.IndexFile, query []float32, limit int) ([]Result, error) {
	if len(query) != a.dim {
		return nil, llmerr.DimensionMismatch(a.dim, len(query))
	}

	nodes := a.graph.Search(query, limit)

	type scored struct {
		pos   int
		score float64
	}
	hits := make([]scored, 0, len(nodes))
	for _, n := range nodes {
		if n.Key < 0 || n.Key >= len(idx.Chunks) {
			continue
		}
		hits = append(hits, scored{pos: n.Key, score: dot(query, idx.Embeddings[n.Key])})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return idx.Chunks[hits[i].pos].ID < idx.Chunks[hits[j].pos].ID
	})

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		results = append(results, toResult(idx, idx.Chunks[h.pos].ID, h.score))
	}
	return results, nil
}
