package index

import (
	"fmt"

	"github.com/johnzfitch/llmx/internal/llmerr"
)

// WithEmbeddings returns a copy of the index carrying the supplied vectors
// and model id. The block must contain exactly one unit-norm vector per
// chunk, all of the same dimension; validation failures reject the whole
// block. The receiver is not mutated.
func (x *IndexFile) WithEmbeddings(vectors [][]float32, modelID string) (*IndexFile, error) {
	if len(vectors) != len(x.Chunks) {
		return nil, llmerr.Newf(llmerr.CodeInvalidInput,
			"embedding block has %d vectors for %d chunks", len(vectors), len(x.Chunks))
	}
	if modelID == "" {
		return nil, llmerr.InvalidInput("embedding model id is required")
	}

	dim := 0
	for i, v := range vectors {
		if i == 0 {
			dim = len(v)
			if dim == 0 {
				return nil, llmerr.InvalidInput("embedding dimension must be positive")
			}
		}
		if len(v) != dim {
			return nil, llmerr.DimensionMismatch(dim, len(v))
		}
		if !IsUnitNorm(v) {
			return nil, llmerr.InvalidInput(fmt.Sprintf("vector %d is not unit norm", i))
		}
	}

	out := *x
	out.Embeddings = vectors
	out.EmbeddingModel = modelID
	out.invalidateDerived()
	return &out, nil
}

// WithoutEmbeddings returns a copy of the index with the embedding block
// cleared. Selective update uses this when no replacement block arrives.
func (x *IndexFile) WithoutEmbeddings() *IndexFile {
	out := *x
	out.Embeddings = nil
	out.EmbeddingModel = ""
	out.invalidateDerived()
	return &out
}
