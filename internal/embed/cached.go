package embed

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/johnzfitch/llmx/internal/hashing"
)

// DefaultCacheSize is the default LRU capacity of the embedding cache.
const DefaultCacheSize = 4096

// CachedEmbedder fronts another embedder with an LRU cache keyed by the
// text's content hash. Re-embedding an unchanged chunk after a selective
// update becomes a map lookup.
type CachedEmbedder struct {
	inner Embedder
	cache *lru.Cache[string, []float32]
}

// NewCached wraps inner with a cache of the given capacity.
func NewCached(inner Embedder, capacity int) (*CachedEmbedder, error) {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	cache, err := lru.New[string, []float32](capacity)
	if err != nil {
		return nil, err
	}
	return &CachedEmbedder{inner: inner, cache: cache}, nil
}

// Embed returns the cached vector when present, delegating otherwise.
func (e *CachedEmbedder) Embed(text string) ([]float32, error) {
	key := hashing.SHA256HexString(text)
	if v, ok := e.cache.Get(key); ok {
		return v, nil
	}
	v, err := e.inner.Embed(text)
	if err != nil {
		return nil, err
	}
	e.cache.Add(key, v)
	return v, nil
}

// EmbedBatch embeds each text, consulting the cache per entry.
func (e *CachedEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
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

// Dimensions delegates to the wrapped embedder.
func (e *CachedEmbedder) Dimensions() int {
	return e.inner.Dimensions()
}

// ModelID delegates to the wrapped embedder.
func (e *CachedEmbedder) ModelID() string {
	return e.inner.ModelID()
}

// Len returns the number of cached vectors.
func (e *CachedEmbedder) Len() int {
	return e.cache.Len()
}

var _ Embedder = (*CachedEmbedder)(nil)
