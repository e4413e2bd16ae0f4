package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkHTML_SplitsAtHeadings(t *testing.T) {
	c := testChunker()
	content := `<html><body>
<h1>Title</h1>
<p>first section</p>
<h2>Sub</h2>
<p>second section</p>
</body></html>`

	pieces := c.Chunk("page.html", []byte(content), KindHTML)
	require.Len(t, pieces, 3)

	// Body prologue before the first heading.
	assert.Empty(t, pieces[0].HeadingPath)

	assert.Equal(t, []string{"Title"}, pieces[1].HeadingPath)
	assert.Contains(t, pieces[1].Content, "first section")

	assert.Equal(t, []string{"Title", "Sub"}, pieces[2].HeadingPath)
	assert.Contains(t, pieces[2].Content, "second section")
}

func TestChunkHTML_StripsScriptAndStyle(t *testing.T) {
	c := testChunker()
	content := `<h1>Top</h1>
<script>
var secret = "never indexed";
</script>
<style>.hidden { display: none; }</style>
<p>visible text</p>`

	pieces := c.Chunk("page.html", []byte(content), KindHTML)
	require.NotEmpty(t, pieces)

	for _, p := range pieces {
		assert.NotContains(t, p.Content, "never indexed")
		assert.NotContains(t, p.Content, "display: none")
	}
	assert.Contains(t, pieces[0].Content, "visible text")
}

func TestChunkHTML_HeadingWithInlineMarkup(t *testing.T) {
	c := testChunker()
	content := `<h1>Hello <em>World</em></h1><p>body</p>`

	pieces := c.Chunk("page.html", []byte(content), KindHTML)
	require.Len(t, pieces, 1)
	assert.Equal(t, []string{"Hello World"}, pieces[0].HeadingPath)
}

func TestChunkHTML_LineProvenance(t *testing.T) {
	c := testChunker()
	content := "<p>before</p>\n<h1>A</h1>\n<p>one</p>\n<h1>B</h1>\n<p>two</p>\n"

	pieces := c.Chunk("page.html", []byte(content), KindHTML)
	require.Len(t, pieces, 3)

	assert.Equal(t, 1, pieces[0].StartLine)
	assert.Equal(t, 2, pieces[1].StartLine)
	assert.Equal(t, 4, pieces[2].StartLine)

	prev := 0
	for _, p := range pieces {
		assert.GreaterOrEqual(t, p.StartLine, prev)
		assert.GreaterOrEqual(t, p.EndLine, p.StartLine)
		prev = p.StartLine
	}
}

func TestChunkHTML_Empty(t *testing.T) {
	c := testChunker()
	assert.Empty(t, c.Chunk("page.html", []byte("  \n "), KindHTML))
}
