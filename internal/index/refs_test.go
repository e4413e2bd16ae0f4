package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnzfitch/llmx/internal/chunk"
	"github.com/johnzfitch/llmx/internal/hashing"
)

func TestFormatRef(t *testing.T) {
	tests := []struct {
		seq  int
		want string
	}{
		{1, "c0001"},
		{35, "c000z"},
		{36, "c0010"},
		{1679, "c01an"},
		{1679616, "c10000"}, // 36^4, first five-digit body
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRef(tt.seq))
	}
}

func TestParseRef(t *testing.T) {
	for _, seq := range []int{1, 42, 1295, 46655, 1679616} {
		ref := FormatRef(seq)
		got, err := ParseRef(ref)
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	}

	_, err := ParseRef("x0001")
	assert.Error(t, err)
	_, err = ParseRef("c01")
	assert.Error(t, err)
	_, err = ParseRef("c00!1")
	assert.Error(t, err)
}

func testChunk(path string, idx, start int, content string) Chunk {
	hash := hashing.SHA256HexString(content)
	id := hashing.ChunkID(path, hash, 0)
	return Chunk{
		ID:            id,
		ShortID:       hashing.ShortID(id),
		Path:          path,
		Kind:          chunk.KindText,
		ChunkIndex:    idx,
		StartLine:     start,
		EndLine:       start,
		Content:       content,
		ContentHash:   hash,
		TokenEstimate: EstimateTokens(content),
	}
}

func TestAssignRefs_CanonicalOrder(t *testing.T) {
	x := &IndexFile{
		Chunks: []Chunk{
			testChunk("b.txt", 0, 1, "bravo"),
			testChunk("a.txt", 0, 1, "alpha"),
			testChunk("a.txt", 1, 5, "again"),
		},
	}
	x.Finalize()
	x.AssignRefs()

	// Canonical order is (path, start_line, end_line, id).
	byPath := make(map[string]string)
	for _, c := range x.Chunks {
		byPath[c.Path+":"+c.Content] = c.Ref
	}
	assert.Equal(t, "c0001", byPath["a.txt:alpha"])
	assert.Equal(t, "c0002", byPath["a.txt:again"])
	assert.Equal(t, "c0003", byPath["b.txt:bravo"])
	assert.Equal(t, 3, x.LastRefSeq)
}

func TestAssignRefs_RetainedKeepTheirs(t *testing.T) {
	x := &IndexFile{
		Chunks: []Chunk{testChunk("a.txt", 0, 1, "alpha")},
	}
	x.Finalize()
	x.AssignRefs()
	origRef := x.Chunks[0].Ref

	// Add a second chunk; the first keeps its ref.
	x.Chunks = append(x.Chunks, testChunk("a.txt", 1, 9, "extra"))
	x.Finalize()
	x.AssignRefs()

	for _, c := range x.Chunks {
		if c.Content == "alpha" {
			assert.Equal(t, origRef, c.Ref)
		} else {
			assert.Equal(t, "c0002", c.Ref)
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
}
