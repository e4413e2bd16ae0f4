package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnzfitch/llmx/internal/llmerr"
)

func TestEngine_BM25Only(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"docs/readme.md": "# Intro\n\nhello world\n\n## Usage\n\nrun it\n",
	})
	eng := NewEngine(idx)

	resp, err := eng.Search("usage", nil, 10, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, StrategyBM25, resp.Strategy)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, []string{"Intro", "Usage"}, resp.Results[0].HeadingPath)
	assert.NotEmpty(t, resp.Results[0].Content, "within budget, content is inlined")
}

func TestEngine_EmptyQueryYieldsEmptyResponse(t *testing.T) {
	idx := buildIndex(t, map[string]string{"a.txt": "something\n"})
	eng := NewEngine(idx)

	resp, err := eng.Search("the of and", nil, 10, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestEngine_SemanticWithoutEmbeddingsFails(t *testing.T) {
	idx := buildIndex(t, map[string]string{"a.txt": "something\n"})
	eng := NewEngine(idx)

	opts := DefaultOptions()
	opts.UseSemantic = true
	opts.QueryEmbedding = []float32{1, 0, 0}

	_, err := eng.Search("something", nil, 10, opts)
	require.Error(t, err)
	var le *llmerr.Error
	require.True(t, errors.As(err, &le))
	assert.Equal(t, llmerr.CodeEmbeddingsUnavailable, le.Code)
}

func TestEngine_SemanticWithoutQueryEmbeddingFails(t *testing.T) {
	idx := embedded(t)
	eng := NewEngine(idx)

	opts := DefaultOptions()
	opts.UseSemantic = true

	_, err := eng.Search("alpha", nil, 10, opts)
	assert.Error(t, err)
}

func TestEngine_HybridLinear(t *testing.T) {
	idx := embedded(t)
	eng := NewEngine(idx)

	opts := DefaultOptions()
	opts.UseSemantic = true
	opts.QueryEmbedding = []float32{1, 0, 0}

	resp, err := eng.Search("alpha", nil, 10, opts)
	require.NoError(t, err)
	assert.Equal(t, StrategyLinear, resp.Strategy)
	require.NotEmpty(t, resp.Results)
	// a.txt wins both sides.
	assert.Equal(t, "a.txt", resp.Results[0].Path)
	assert.Equal(t, DefaultWeights(), resp.Weights)
}

func TestEngine_HybridRRF(t *testing.T) {
	idx := embedded(t)
	eng := NewEngine(idx)

	opts := DefaultOptions()
	opts.UseSemantic = true
	opts.Strategy = StrategyRRF
	opts.QueryEmbedding = []float32{0, 1, 0}

	resp, err := eng.Search("beta", nil, 10, opts)
	require.NoError(t, err)
	assert.Equal(t, StrategyRRF, resp.Strategy)
	assert.Equal(t, DefaultRRFK, resp.RRFK)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "b.txt", resp.Results[0].Path)
}

func TestEngine_InvalidWeights(t *testing.T) {
	idx := embedded(t)
	eng := NewEngine(idx)

	opts := DefaultOptions()
	opts.UseSemantic = true
	opts.QueryEmbedding = []float32{1, 0, 0}
	opts.Weights = Weights{BM25: 0.9, Semantic: 0.9}

	_, err := eng.Search("alpha", nil, 10, opts)
	assert.Error(t, err)
}

func TestEngine_NegativeBudgetRejected(t *testing.T) {
	idx := buildIndex(t, map[string]string{"a.txt": "x y z content\n"})
	eng := NewEngine(idx)

	opts := DefaultOptions()
	opts.MaxTokens = -1
	_, err := eng.Search("content", nil, 10, opts)
	assert.Error(t, err)
}

func TestEngine_ApproximatePathMatchesExactTop(t *testing.T) {
	idx := embedded(t)
	eng := NewEngine(idx)

	exact := DefaultOptions()
	exact.UseSemantic = true
	exact.QueryEmbedding = []float32{0, 0, 1}

	approx := exact
	approx.Approximate = true

	a, err := eng.Search("gamma", nil, 1, exact)
	require.NoError(t, err)
	b, err := eng.Search("gamma", nil, 1, approx)
	require.NoError(t, err)

	require.NotEmpty(t, a.Results)
	require.NotEmpty(t, b.Results)
	assert.Equal(t, a.Results[0].Path, b.Results[0].Path)
}
