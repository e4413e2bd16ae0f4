package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/johnzfitch/llmx/internal/index"
)

func TestChunkFile_FrontMatter(t *testing.T) {
	idx := sampleIndex(t)

	var mdChunk int = -1
	for i := range idx.Chunks {
		if idx.Chunks[i].Path == "docs/readme.md" {
			mdChunk = i
			break
		}
	}
	require.GreaterOrEqual(t, mdChunk, 0)
	c := &idx.Chunks[mdChunk]

	body, err := ChunkFile(idx, c)
	require.NoError(t, err)

	// Front matter delimited by --- lines, then a blank line, then content.
	require.True(t, strings.HasPrefix(body, "---\n"))
	rest := body[4:]
	end := strings.Index(rest, "---\n")
	require.Greater(t, end, 0)
	fm := rest[:end]
	tail := rest[end+4:]
	require.True(t, strings.HasPrefix(tail, "\n"))
	assert.True(t, strings.HasPrefix(tail[1:], c.Content))

	// The YAML parses and carries the fixed field order.
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(fm), &parsed))
	assert.Equal(t, c.Ref, parsed["ref"])
	assert.Equal(t, c.ID, parsed["id"])
	assert.Equal(t, c.Path, parsed["path"])
	assert.Equal(t, "markdown", parsed["kind"])

	keys := orderedKeys(t, fm)
	assert.Equal(t, []string{
		"ref", "id", "slug", "path", "kind", "lines",
		"token_estimate", "heading_path", "symbol", "address", "asset_path",
	}, keys)

	// Optional fields absent on a markdown chunk render as null.
	assert.Contains(t, fm, "symbol: null")
	assert.Contains(t, fm, "address: null")
	assert.Contains(t, fm, "asset_path: null")
	// Flow style for the line range.
	assert.Contains(t, fm, "lines: [")
}

// orderedKeys extracts top-level YAML keys in document order.
func orderedKeys(t *testing.T, fm string) []string {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(fm), &node))
	require.Len(t, node.Content, 1)
	mapping := node.Content[0]

	var keys []string
	for i := 0; i < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	return keys
}

func TestChunkFile_ImageChunk(t *testing.T) {
	idx := sampleIndex(t)

	var img int = -1
	for i := range idx.Chunks {
		if idx.Chunks[i].AssetPath != "" {
			img = i
			break
		}
	}
	require.GreaterOrEqual(t, img, 0)

	body, err := ChunkFile(idx, &idx.Chunks[img])
	require.NoError(t, err)
	assert.Contains(t, body, "asset_path: images/img/logo.png")
	assert.Contains(t, body, "kind: image")
}

func TestChunkFileCompact(t *testing.T) {
	idx := sampleIndex(t)
	c := &idx.Chunks[0]

	body := ChunkFileCompact(idx, c)
	first := strings.SplitN(body, "\n", 2)[0]
	fields := strings.Split(first, "\t")
	require.Len(t, fields, 7)
	assert.Equal(t, "@llmx", fields[0])
	assert.Equal(t, c.Ref, fields[1])
}

func TestChunksDir_OrderedByRef(t *testing.T) {
	idx := sampleIndex(t)
	files, err := ChunksDir(idx)
	require.NoError(t, err)
	require.Len(t, files, len(idx.Chunks))

	// Refs ascend in sequence order.
	prev := 0
	for _, f := range files {
		seq, err := index.ParseRef(f.Ref)
		require.NoError(t, err)
		assert.Greater(t, seq, prev)
		prev = seq
	}
}

func TestChunkFile_Deterministic(t *testing.T) {
	a := sampleIndex(t)
	b := sampleIndex(t)

	fa, err := ChunksDir(a)
	require.NoError(t, err)
	fb, err := ChunksDir(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
}
