package embed

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/johnzfitch/llmx/internal/tokenizer"
)

// DefaultDimensions is the static embedder's default vector size.
const DefaultDimensions = 256

// Feature weights for vector generation. Tokens carry most of the signal;
// character trigrams add robustness to identifier variants.
const (
	tokenWeight = 0.7
	ngramWeight = 0.3
	ngramSize   = 3
)

// StaticEmbedder generates embeddings by hashing tokens and character
// trigrams into a fixed-size vector. It needs no network and no model
// download, and the same text always maps to the same unit vector.
type StaticEmbedder struct {
	dims int
}

// NewStatic creates a static embedder. A non-positive dims falls back to
// DefaultDimensions.
func NewStatic(dims int) *StaticEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &StaticEmbedder{dims: dims}
}

// Embed returns the unit vector for text. Empty input maps to a fixed
// basis vector so the result is still unit norm.
func (e *StaticEmbedder) Embed(text string) ([]float32, error) {
	vector := make([]float32, e.dims)

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		vector[0] = 1
		return vector, nil
	}

	for _, token := range tokenizer.Tokenize(trimmed) {
		vector[hashToIndex(token, e.dims)] += tokenWeight
	}

	normalized := normalizeForNgrams(trimmed)
	for _, ngram := range extractNgrams(normalized, ngramSize) {
		vector[hashToIndex(ngram, e.dims)] += ngramWeight
	}

	normalizeVector(vector)
	return vector, nil
}

// EmbedBatch embeds each text in order.
func (e *StaticEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Dimensions returns the vector size.
func (e *StaticEmbedder) Dimensions() int {
	return e.dims
}

// ModelID returns the compatibility token, e.g. "static-256".
func (e *StaticEmbedder) ModelID() string {
	return fmt.Sprintf("static-%d", e.dims)
}

// hashToIndex maps a feature string to a vector slot.
func hashToIndex(s string, dims int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return int(h.Sum32() % uint32(dims))
}

// normalizeForNgrams lowercases and collapses whitespace runs to single
// spaces so trigram features ignore layout.
func normalizeForNgrams(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// extractNgrams yields the character n-grams of s.
func extractNgrams(s string, n int) []string {
	runes := []rune(s)
	if len(runes) < n {
		return nil
	}
	out := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		out = append(out, string(runes[i:i+n]))
	}
	return out
}

// normalizeVector scales v to unit L2 norm in place. A zero vector gets a
// fixed basis component instead.
func normalizeVector(v []float32) {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		v[0] = 1
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}

var _ Embedder = (*StaticEmbedder)(nil)
