package chunk

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkJSON_ObjectTopLevelKeys(t *testing.T) {
	c := testChunker()
	content := "{\n  \"name\": \"llmx\",\n  \"version\": 2,\n  \"config\": {\n    \"debug\": true\n  }\n}\n"

	pieces := c.Chunk("package.json", []byte(content), KindJSON)
	require.Len(t, pieces, 3)

	assert.Equal(t, "$.name", pieces[0].Address)
	assert.Equal(t, "$.version", pieces[1].Address)
	assert.Equal(t, "$.config", pieces[2].Address)

	assert.Contains(t, pieces[0].Content, "\"name\"")
	assert.Contains(t, pieces[0].Content, "llmx")
	assert.Contains(t, pieces[2].Content, "\"debug\": true")

	// Best-effort lines stay monotonic.
	prev := 0
	for _, p := range pieces {
		assert.GreaterOrEqual(t, p.StartLine, prev)
		assert.GreaterOrEqual(t, p.EndLine, p.StartLine)
		prev = p.StartLine
	}
}

func TestChunkJSON_ArrayRanges(t *testing.T) {
	c := testChunker()

	elems := make([]string, 120)
	for i := range elems {
		elems[i] = fmt.Sprintf("{\"i\": %d}", i)
	}
	content := "[\n" + strings.Join(elems, ",\n") + "\n]\n"

	pieces := c.Chunk("data.json", []byte(content), KindJSON)
	require.Len(t, pieces, 3)

	assert.Equal(t, "$[0:50]", pieces[0].Address)
	assert.Equal(t, "$[50:100]", pieces[1].Address)
	assert.Equal(t, "$[100:120]", pieces[2].Address)
	assert.Contains(t, pieces[0].Content, "{\"i\": 0}")
	assert.Contains(t, pieces[2].Content, "{\"i\": 119}")
}

func TestChunkJSON_Scalar(t *testing.T) {
	c := testChunker()
	pieces := c.Chunk("flag.json", []byte("true\n"), KindJSON)

	require.Len(t, pieces, 1)
	assert.Equal(t, "$", pieces[0].Address)
	assert.Equal(t, "true", pieces[0].Content)
}

func TestChunkJSON_InvalidFallsBackToText(t *testing.T) {
	c := testChunker()
	content := "this is not json at all\n\nsecond paragraph\n"

	pieces := c.Chunk("broken.json", []byte(content), KindJSON)
	require.NotEmpty(t, pieces)
	for _, p := range pieces {
		assert.Empty(t, p.Address)
	}
}

func TestChunkJSON_EmptyObject(t *testing.T) {
	c := testChunker()
	assert.Empty(t, c.Chunk("empty.json", []byte("{}"), KindJSON))
}

func TestChunkJSON_ContentIsValidSlice(t *testing.T) {
	c := testChunker()
	content := "{\"a\": [1, 2, 3], \"b\": {\"nested\": \"value\"}}"

	pieces := c.Chunk("x.json", []byte(content), KindJSON)
	require.Len(t, pieces, 2)

	// Each piece carries the original bytes of `"key": value`, so the value
	// part still parses after stripping the key prefix.
	for _, p := range pieces {
		colon := strings.Index(p.Content, ":")
		require.Greater(t, colon, 0)
		var v any
		assert.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(p.Content[colon+1:])), &v))
	}
}
