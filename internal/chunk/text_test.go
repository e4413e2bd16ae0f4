package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_SingleParagraph(t *testing.T) {
	c := testChunker()
	pieces := c.Chunk("notes.txt", []byte("just one paragraph\nwith two lines\n"), KindText)

	require.Len(t, pieces, 1)
	assert.Equal(t, "just one paragraph\nwith two lines", pieces[0].Content)
	assert.Equal(t, 1, pieces[0].StartLine)
	assert.Equal(t, 2, pieces[0].EndLine)
}

func TestChunkText_GroupsUpToTarget(t *testing.T) {
	c := New(Bounds{TargetChars: 40, MaxChars: 8000})
	content := "para one here\n\npara two here\n\npara three here\n"

	pieces := c.Chunk("notes.txt", []byte(content), KindText)
	require.Greater(t, len(pieces), 1)

	// Line provenance stays monotonic.
	prev := 0
	for _, p := range pieces {
		assert.GreaterOrEqual(t, p.StartLine, prev)
		prev = p.StartLine
	}
}

func TestChunkText_HardCapSplitsAtLines(t *testing.T) {
	c := New(Bounds{TargetChars: 60, MaxChars: 60})
	long := strings.Repeat("0123456789 ", 4) // one 44-char line
	content := long + "\n" + long + "\n" + long + "\n"

	pieces := c.Chunk("notes.txt", []byte(content), KindText)
	require.Greater(t, len(pieces), 1)
	for _, p := range pieces {
		assert.LessOrEqual(t, len([]rune(p.Content)), 60)
	}
}

func TestChunkText_Empty(t *testing.T) {
	c := testChunker()
	assert.Empty(t, c.Chunk("a.txt", []byte("\n\n  \n"), KindText))
}

func TestChunkUnknown_LossyAndCapped(t *testing.T) {
	c := New(Bounds{TargetChars: 50, MaxChars: 50})
	data := append([]byte("binaryish "), 0xff, 0xfe)
	data = append(data, []byte(strings.Repeat("x", 200))...)

	pieces := c.Chunk("blob.bin", data, KindUnknown)
	require.Len(t, pieces, 1)
	assert.LessOrEqual(t, len([]rune(pieces[0].Content)), 50)
	assert.True(t, strings.HasPrefix(pieces[0].Content, "binaryish"))
}

func TestChunkImage(t *testing.T) {
	c := testChunker()
	pieces := c.Chunk("img/logo.png", []byte{0x89, 'P', 'N', 'G'}, KindImage)

	require.Len(t, pieces, 1)
	assert.Empty(t, pieces[0].Content)
	assert.Equal(t, "images/img/logo.png", pieces[0].AssetPath)
	assert.Empty(t, pieces[0].HeadingPath)
	assert.Equal(t, 1, pieces[0].StartLine)
	assert.Equal(t, 1, pieces[0].EndLine)
}
