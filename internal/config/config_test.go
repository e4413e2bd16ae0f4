package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultChunkTargetChars, cfg.Ingest.ChunkTargetChars)
	assert.Equal(t, DefaultChunkMaxChars, cfg.Ingest.ChunkMaxChars)
	assert.Equal(t, int64(DefaultMaxFileBytes), cfg.Ingest.MaxFileBytes)
	assert.Equal(t, int64(DefaultMaxTotalBytes), cfg.Ingest.MaxTotalBytes)
	assert.Equal(t, DefaultMaxChunksPerFile, cfg.Ingest.MaxChunksPerFile)
	assert.Equal(t, DefaultRRFConstant, cfg.Search.RRFConstant)
	assert.InDelta(t, 1.0, cfg.Search.BM25Weight+cfg.Search.SemanticWeight, 1e-9)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default().Ingest, cfg.Ingest)
}

func TestLoad_YAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	body := `ingest:
  chunk_target_chars: 1000
  chunk_max_chars: 2000
  allowed_extensions: [".md", "txt"]
search:
  bm25_weight: 0.7
  semantic_weight: 0.3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(body), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Ingest.ChunkTargetChars)
	assert.Equal(t, 2000, cfg.Ingest.ChunkMaxChars)
	assert.Equal(t, 0.7, cfg.Search.BM25Weight)

	exts := cfg.Ingest.NormalizedExtensions()
	assert.Contains(t, exts, ".md")
	assert.Contains(t, exts, ".txt")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LLMX_RRF_CONSTANT", "90")
	t.Setenv("LLMX_CHUNK_MAX_CHARS", "9000")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Search.RRFConstant)
	assert.Equal(t, 9000, cfg.Ingest.ChunkMaxChars)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("ingest: [unclosed\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidate_Rejections(t *testing.T) {
	cfg := Default()
	cfg.Search.BM25Weight = 0.9
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Ingest.ChunkTargetChars = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Ingest.ChunkTargetChars = 10_000 // above the hard cap
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Search.MaxTokens = -1
	assert.Error(t, cfg.Validate())
}

func TestNormalizedExtensions_Empty(t *testing.T) {
	cfg := Default()
	assert.Nil(t, cfg.Ingest.NormalizedExtensions())
}
