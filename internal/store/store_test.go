package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnzfitch/llmx/internal/ingest"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	require.NoError(t, err)

	idx := ingest.Ingest([]ingest.FileInput{
		{Path: "docs/readme.md", Data: []byte("# Intro\n\nhello world\n\n## Usage\n\nrun it\n")},
		{Path: "img/logo.png", Data: []byte("\x89PNG\r\n\x1a\nbytes")},
	}, ingest.DefaultOptions())

	require.NoError(t, st.Save(idx))
	assert.True(t, st.Exists())

	loaded, err := st.Load()
	require.NoError(t, err)

	assert.Equal(t, idx.IndexID, loaded.IndexID)
	assert.Equal(t, idx.Chunks, loaded.Chunks)
	assert.Equal(t, idx.ChunkRefs, loaded.ChunkRefs)
	assert.Equal(t, idx.ChunkLengths, loaded.ChunkLengths)
	assert.Equal(t, idx.LastRefSeq, loaded.LastRefSeq)
	assert.Equal(t, idx.Assets, loaded.Assets)

	// The inverted index is rebuilt on load and serves searches.
	assert.NotEmpty(t, loaded.Postings("usage"))
}

func TestStore_LoadMissing(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = st.Load()
	assert.Error(t, err)
	assert.False(t, st.Exists())
}

func TestStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(st.Path(), []byte("not msgpack"), 0o644))
	_, err = st.Load()
	assert.Error(t, err)
}

func TestStore_SaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	require.NoError(t, err)

	idx := ingest.Ingest([]ingest.FileInput{
		{Path: "a.md", Data: []byte("# A\n\nbody\n")},
	}, ingest.DefaultOptions())
	require.NoError(t, st.Save(idx))

	// No temp droppings left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
	assert.FileExists(t, filepath.Join(dir, SnapshotName))
}

func TestStore_EmbeddingsSurviveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	require.NoError(t, err)

	idx := ingest.Ingest([]ingest.FileInput{
		{Path: "a.md", Data: []byte("# A\n\nbody\n")},
	}, ingest.DefaultOptions())

	vectors := make([][]float32, len(idx.Chunks))
	for i := range vectors {
		vectors[i] = []float32{1, 0, 0, 0}
	}
	embedded, err := idx.WithEmbeddings(vectors, "static-4")
	require.NoError(t, err)

	require.NoError(t, st.Save(embedded))
	loaded, err := st.Load()
	require.NoError(t, err)

	assert.True(t, loaded.HasEmbeddings())
	assert.Equal(t, "static-4", loaded.EmbeddingModel)
	assert.Equal(t, embedded.Embeddings, loaded.Embeddings)
}
