package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChunker() *Chunker {
	return New(Bounds{TargetChars: 4000, MaxChars: 8000})
}

func TestChunkMarkdown_TwoSections(t *testing.T) {
	c := testChunker()
	content := "# Intro\n\nhello world\n\n## Usage\n\nrun it\n"

	pieces := c.Chunk("docs/readme.md", []byte(content), KindMarkdown)
	require.Len(t, pieces, 2)

	assert.Equal(t, []string{"Intro"}, pieces[0].HeadingPath)
	assert.Equal(t, 1, pieces[0].StartLine)
	assert.Equal(t, 3, pieces[0].EndLine)
	assert.Equal(t, "# Intro\n\nhello world", pieces[0].Content)

	assert.Equal(t, []string{"Intro", "Usage"}, pieces[1].HeadingPath)
	assert.Equal(t, 5, pieces[1].StartLine)
	assert.Equal(t, 7, pieces[1].EndLine)
	assert.Equal(t, "## Usage\n\nrun it", pieces[1].Content)
}

func TestChunkMarkdown_Preamble(t *testing.T) {
	c := testChunker()
	content := "intro text before any heading\n\n# First\n\nbody\n"

	pieces := c.Chunk("a.md", []byte(content), KindMarkdown)
	require.Len(t, pieces, 2)

	assert.Empty(t, pieces[0].HeadingPath)
	assert.Equal(t, 1, pieces[0].StartLine)
	assert.Equal(t, []string{"First"}, pieces[1].HeadingPath)
	assert.Equal(t, 3, pieces[1].StartLine)
}

func TestChunkMarkdown_HeadingStackResets(t *testing.T) {
	c := testChunker()
	content := "# A\n\none\n\n## B\n\ntwo\n\n# C\n\nthree\n"

	pieces := c.Chunk("a.md", []byte(content), KindMarkdown)
	require.Len(t, pieces, 3)

	assert.Equal(t, []string{"A"}, pieces[0].HeadingPath)
	assert.Equal(t, []string{"A", "B"}, pieces[1].HeadingPath)
	// A new h1 clears the deeper levels.
	assert.Equal(t, []string{"C"}, pieces[2].HeadingPath)
}

func TestChunkMarkdown_FenceProtectsHeadings(t *testing.T) {
	c := testChunker()
	content := "# Top\n\n```\n# not a heading\n```\n\ntail\n"

	pieces := c.Chunk("a.md", []byte(content), KindMarkdown)
	require.Len(t, pieces, 1)
	assert.Contains(t, pieces[0].Content, "# not a heading")
	assert.Equal(t, []string{"Top"}, pieces[0].HeadingPath)
}

func TestChunkMarkdown_TildeFence(t *testing.T) {
	c := testChunker()
	content := "# Top\n\n~~~\n## inside\n~~~\n"

	pieces := c.Chunk("a.md", []byte(content), KindMarkdown)
	require.Len(t, pieces, 1)
	assert.Contains(t, pieces[0].Content, "## inside")
}

func TestChunkMarkdown_HardCap(t *testing.T) {
	c := New(Bounds{TargetChars: 50, MaxChars: 100})

	var sb strings.Builder
	sb.WriteString("# Big\n\n")
	for i := 0; i < 20; i++ {
		sb.WriteString("line of filler text for the big section\n")
	}

	pieces := c.Chunk("a.md", []byte(sb.String()), KindMarkdown)
	require.Greater(t, len(pieces), 1)

	prevStart := 0
	for _, p := range pieces {
		assert.LessOrEqual(t, len([]rune(p.Content)), 100)
		assert.Equal(t, []string{"Big"}, p.HeadingPath)
		assert.GreaterOrEqual(t, p.StartLine, prevStart)
		prevStart = p.StartLine
	}
}

func TestChunkMarkdown_Empty(t *testing.T) {
	c := testChunker()
	assert.Empty(t, c.Chunk("a.md", []byte("   \n\n"), KindMarkdown))
	assert.Empty(t, c.Chunk("a.md", nil, KindMarkdown))
}

func TestChunkMarkdown_Deterministic(t *testing.T) {
	c := testChunker()
	content := []byte("# A\n\nbody one\n\n## B\n\nbody two\n")

	first := c.Chunk("a.md", content, KindMarkdown)
	second := c.Chunk("a.md", content, KindMarkdown)
	assert.Equal(t, first, second)
}
