// Package export renders the byte-deterministic artifacts of an IndexFile:
// per-chunk files, the manifest TSV, the pointer document, and ZIP bundles.
// The exporter never re-chunks and never re-tokenizes; token counts come
// from the length table built at index time.
package export

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/johnzfitch/llmx/internal/chunk"
	"github.com/johnzfitch/llmx/internal/index"
)

// ManifestHeader is the magic of the manifest's first row.
const ManifestHeader = "llmx_manifest_llm_tsv"

// tables holds the integer-indexed lookup tables shared by manifest rows
// and compact chunk headers. Table order is derived from the sorted file
// list, so it is deterministic for a given IndexFile.
type tables struct {
	dirs     []string
	dirIdx   map[string]int
	paths    []string
	pathIdx  map[string]int
	pathDir  []int
	baseName []string
	kinds    []chunk.Kind
	kindIdx  map[chunk.Kind]int
}

// buildTables derives the D/P/K tables from the file list.
func buildTables(x *index.IndexFile) *tables {
	t := &tables{
		dirIdx:  make(map[string]int),
		pathIdx: make(map[string]int),
		kindIdx: make(map[chunk.Kind]int),
	}

	for _, f := range x.Files {
		dir := dirOf(f.Path)
		if _, ok := t.dirIdx[dir]; !ok {
			t.dirIdx[dir] = len(t.dirs)
			t.dirs = append(t.dirs, dir)
		}
		if _, ok := t.kindIdx[f.Kind]; !ok {
			t.kindIdx[f.Kind] = len(t.kinds)
			t.kinds = append(t.kinds, f.Kind)
		}
		t.pathIdx[f.Path] = len(t.paths)
		t.paths = append(t.paths, f.Path)
		t.pathDir = append(t.pathDir, t.dirIdx[dir])
		t.baseName = append(t.baseName, path.Base(f.Path))
	}

	return t
}

// dirOf returns the directory with a trailing slash, or empty for root.
func dirOf(p string) string {
	d := path.Dir(p)
	if d == "." || d == "/" {
		return ""
	}
	return d + "/"
}

// Manifest renders manifest.llm.tsv. Rows are tab-separated, terminated by
// \n, UTF-8 without BOM: header, D rows, P rows, K rows, F rows sorted by
// path, C rows sorted by ref sequence.
func Manifest(x *index.IndexFile) string {
	t := buildTables(x)
	var b strings.Builder

	fmt.Fprintf(&b, "%s\t%d\t%s\n", ManifestHeader, x.SchemaVersion, x.IndexID)

	for i, d := range t.dirs {
		fmt.Fprintf(&b, "D\t%d\t%s\n", i, d)
	}
	for i := range t.paths {
		fmt.Fprintf(&b, "P\t%d\t%d\t%s\n", i, t.pathDir[i], t.baseName[i])
	}
	for i, k := range t.kinds {
		fmt.Fprintf(&b, "K\t%d\t%s\n", i, k)
	}

	// File summaries, in sorted path order.
	type fileAgg struct {
		chunks int
		tokens int
		endMax int
		label  string
	}
	agg := make(map[string]*fileAgg, len(x.Files))
	for _, f := range x.Files {
		agg[f.Path] = &fileAgg{label: fileLabel(f.Path)}
	}
	for i := range x.Chunks {
		c := &x.Chunks[i]
		a := agg[c.Path]
		if a == nil {
			continue
		}
		a.chunks++
		a.tokens += x.ChunkLengths[c.ID]
		if c.EndLine > a.endMax {
			a.endMax = c.EndLine
		}
	}
	for _, f := range x.Files {
		a := agg[f.Path]
		fmt.Fprintf(&b, "F\t%d\t%d\t%d\t%d\t%d\t%s\n",
			t.pathIdx[f.Path], t.kindIdx[f.Kind], a.chunks, a.tokens, a.endMax, a.label)
	}

	// Chunk rows, in ref sequence order.
	for _, c := range chunksByRef(x) {
		fmt.Fprintf(&b, "C\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			c.Ref, t.pathIdx[c.Path], t.kindIdx[c.Kind],
			c.StartLine, c.EndLine, x.ChunkLengths[c.ID], c.Slug)
	}

	return b.String()
}

// chunksByRef returns the chunks ordered by ref sequence number. Refs are
// base36 with variable width past four digits, so lexicographic order is
// not numeric order.
func chunksByRef(x *index.IndexFile) []*index.Chunk {
	out := make([]*index.Chunk, 0, len(x.Chunks))
	for i := range x.Chunks {
		out = append(out, &x.Chunks[i])
	}
	sort.Slice(out, func(i, j int) bool {
		si, ei := index.ParseRef(out[i].Ref)
		sj, ej := index.ParseRef(out[j].Ref)
		if ei != nil || ej != nil {
			return out[i].Ref < out[j].Ref
		}
		return si < sj
	})
	return out
}

// fileLabel is the slug-style label of a file, derived from its stem.
func fileLabel(p string) string {
	return chunk.Slug(p, chunk.Piece{})
}
