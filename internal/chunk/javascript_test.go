package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findBySymbol(pieces []Piece, symbol string) *Piece {
	for i := range pieces {
		if pieces[i].Symbol == symbol {
			return &pieces[i]
		}
	}
	return nil
}

func TestChunkJavaScript_Functions(t *testing.T) {
	c := testChunker()
	content := `import fs from "fs";

function alpha() {
  return 1;
}

function beta() {
  return 2;
}
`

	pieces := c.Chunk("src/app.js", []byte(content), KindJavaScript)
	require.NotEmpty(t, pieces)

	alpha := findBySymbol(pieces, "alpha")
	require.NotNil(t, alpha)
	assert.Contains(t, alpha.Content, "return 1")
	assert.Equal(t, 3, alpha.StartLine)
	assert.Equal(t, 5, alpha.EndLine)

	beta := findBySymbol(pieces, "beta")
	require.NotNil(t, beta)
	assert.Equal(t, 7, beta.StartLine)

	// The import line survives as an unnamed piece.
	var foundImport bool
	for _, p := range pieces {
		if p.Symbol == "" && len(p.Content) > 0 {
			foundImport = foundImport || p.StartLine == 1
		}
	}
	assert.True(t, foundImport, "import statement should be indexed")
}

func TestChunkJavaScript_ArrowAssignment(t *testing.T) {
	c := testChunker()
	content := `const handler = (req) => {
  return req.body;
};
`

	pieces := c.Chunk("src/h.js", []byte(content), KindJavaScript)
	handler := findBySymbol(pieces, "handler")
	require.NotNil(t, handler)
	assert.Contains(t, handler.Content, "req.body")
}

func TestChunkJavaScript_Class(t *testing.T) {
	c := testChunker()
	content := `class Store {
  constructor() {
    this.items = [];
  }

  add(item) {
    this.items.push(item);
  }
}
`

	pieces := c.Chunk("src/store.js", []byte(content), KindJavaScript)
	store := findBySymbol(pieces, "Store")
	require.NotNil(t, store)
	assert.Contains(t, store.Content, "this.items.push(item)")
	assert.Equal(t, 1, store.StartLine)
	assert.Equal(t, 9, store.EndLine)
}

func TestChunkJavaScript_ExportedDeclarations(t *testing.T) {
	c := testChunker()
	content := `export function gamma() { return 3; }
export const delta = () => 4;
`

	pieces := c.Chunk("src/e.js", []byte(content), KindJavaScript)
	assert.NotNil(t, findBySymbol(pieces, "gamma"))
	assert.NotNil(t, findBySymbol(pieces, "delta"))
}

func TestChunkJavaScript_TypeScript(t *testing.T) {
	c := testChunker()
	content := `export function typed(x: number): number {
  return x * 2;
}
`

	pieces := c.Chunk("src/t.ts", []byte(content), KindJavaScript)
	typed := findBySymbol(pieces, "typed")
	require.NotNil(t, typed)
	assert.Contains(t, typed.Content, "x * 2")
}

func TestChunkJavaScript_GarbageFallsBackToText(t *testing.T) {
	c := testChunker()
	content := "just prose, no declarations here\n\nmore prose\n"

	pieces := c.Chunk("src/readme.js", []byte(content), KindJavaScript)
	require.NotEmpty(t, pieces)
	for _, p := range pieces {
		assert.Empty(t, p.Symbol)
	}
}

func TestChunkJavaScript_LinesMonotonic(t *testing.T) {
	c := testChunker()
	content := `const a = 1;
function f() { return a; }
const g = () => 2;
class C { m() { return 3; } }
`

	pieces := c.Chunk("src/m.js", []byte(content), KindJavaScript)
	prev := 0
	for _, p := range pieces {
		assert.GreaterOrEqual(t, p.StartLine, prev)
		prev = p.StartLine
	}
}
