package index

import (
	"fmt"
	"math"

	"github.com/johnzfitch/llmx/internal/hashing"
	"github.com/johnzfitch/llmx/internal/llmerr"
)

// UnitNormTolerance is the allowed deviation from unit L2 norm.
const UnitNormTolerance = 1e-4

// Validate checks the structural invariants of the aggregate. A failure
// means the IndexFile should be discarded.
func (x *IndexFile) Validate() error {
	// Chunks sorted by (path, chunk_index); dense per-file ordinals.
	prevPath := ""
	nextIdx := 0
	prevStart := 0
	for i := range x.Chunks {
		c := &x.Chunks[i]
		if c.Path < prevPath {
			return llmerr.CorruptIndex(fmt.Sprintf("chunks out of path order at %d", i))
		}
		if c.Path != prevPath {
			prevPath = c.Path
			nextIdx = 0
			prevStart = 0
		}
		if c.ChunkIndex != nextIdx {
			return llmerr.CorruptIndex(fmt.Sprintf("chunk index not dense in %s: got %d want %d", c.Path, c.ChunkIndex, nextIdx))
		}
		nextIdx++

		if c.StartLine < 1 || c.EndLine < c.StartLine {
			return llmerr.CorruptIndex(fmt.Sprintf("bad line range %d..%d in %s", c.StartLine, c.EndLine, c.Path))
		}
		if c.StartLine < prevStart {
			return llmerr.CorruptIndex(fmt.Sprintf("line ranges not monotonic in %s", c.Path))
		}
		prevStart = c.StartLine

		if c.ContentHash != hashing.SHA256HexString(c.Content) {
			return llmerr.CorruptIndex(fmt.Sprintf("content hash mismatch for chunk %s", c.ShortID))
		}
	}

	// chunk_refs is a bijection over the chunk set.
	if len(x.ChunkRefs) != len(x.Chunks) {
		return llmerr.CorruptIndex(fmt.Sprintf("chunk_refs has %d entries for %d chunks", len(x.ChunkRefs), len(x.Chunks)))
	}
	seenRefs := make(map[string]struct{}, len(x.ChunkRefs))
	for i := range x.Chunks {
		ref, ok := x.ChunkRefs[x.Chunks[i].ID]
		if !ok {
			return llmerr.CorruptIndex(fmt.Sprintf("chunk %s has no ref", x.Chunks[i].ShortID))
		}
		if ref != x.Chunks[i].Ref {
			return llmerr.CorruptIndex(fmt.Sprintf("ref mismatch for chunk %s", x.Chunks[i].ShortID))
		}
		if _, dup := seenRefs[ref]; dup {
			return llmerr.CorruptIndex(fmt.Sprintf("duplicate ref %s", ref))
		}
		seenRefs[ref] = struct{}{}
		if !refPattern.MatchString(ref) {
			return llmerr.CorruptIndex(fmt.Sprintf("malformed ref %s", ref))
		}
	}

	// Embedding block shape and norms.
	if len(x.Embeddings) > 0 {
		if len(x.Embeddings) != len(x.Chunks) {
			return llmerr.CorruptIndex(fmt.Sprintf("embedding count %d != chunk count %d", len(x.Embeddings), len(x.Chunks)))
		}
		dim := len(x.Embeddings[0])
		for i, v := range x.Embeddings {
			if len(v) != dim {
				return llmerr.CorruptIndex(fmt.Sprintf("embedding %d has dimension %d, expected %d", i, len(v), dim))
			}
			if !IsUnitNorm(v) {
				return llmerr.CorruptIndex(fmt.Sprintf("embedding %d is not unit norm", i))
			}
		}
	}

	return nil
}

// IsUnitNorm reports whether v has unit L2 norm within tolerance.
func IsUnitNorm(v []float32) bool {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	return math.Abs(math.Sqrt(sum)-1) <= UnitNormTolerance
}
