// Package chunk splits files into ordered, provenance-anchored pieces.
// Chunking is a pure function of (path, bytes, kind, bounds): the same
// input always yields the same piece sequence, which is what makes chunk
// identity stable across runs.
package chunk

// Kind classifies a file for chunking purposes.
type Kind string

const (
	KindMarkdown   Kind = "markdown"
	KindJSON       Kind = "json"
	KindJavaScript Kind = "javascript"
	KindHTML       Kind = "html"
	KindText       Kind = "text"
	KindImage      Kind = "image"
	KindUnknown    Kind = "unknown"
)

// Bounds are the size limits applied by every chunking path.
type Bounds struct {
	// TargetChars is the soft per-chunk size target in characters.
	TargetChars int
	// MaxChars is the hard per-chunk cap in characters.
	MaxChars int
}

// Piece is one chunk as produced by the chunker, before identity assignment.
// The ingester turns pieces into index chunks by adding hashes, occurrence
// ordinals, and chunk indexes.
type Piece struct {
	// Content is the chunk text as indexed. Empty for image pieces.
	Content string
	// StartLine and EndLine are the 1-based inclusive line range in the
	// original file.
	StartLine int
	EndLine   int
	// HeadingPath is the ordered ancestor headings (markdown, HTML).
	HeadingPath []string
	// Symbol is the primary declared symbol name (javascript), or empty.
	Symbol string
	// Address is a structural pointer (JSON path or array range), or empty.
	Address string
	// AssetPath is the archive-relative asset location for binary pieces
	// (images/<path>), or empty.
	AssetPath string
}

// Chunker dispatches file content to the per-kind splitting strategies.
type Chunker struct {
	bounds Bounds
	js     *jsParser
}

// New creates a chunker with the given bounds.
func New(bounds Bounds) *Chunker {
	if bounds.TargetChars <= 0 {
		bounds.TargetChars = 4000
	}
	if bounds.MaxChars <= 0 {
		bounds.MaxChars = 8000
	}
	return &Chunker{
		bounds: bounds,
		js:     newJSParser(),
	}
}

// Close releases parser resources.
func (c *Chunker) Close() {
	if c.js != nil {
		c.js.Close()
	}
}

// Chunk splits data into ordered pieces according to kind. It never fails:
// malformed JSON and unparseable scripts fall back to text chunking.
func (c *Chunker) Chunk(path string, data []byte, kind Kind) []Piece {
	switch kind {
	case KindMarkdown:
		return c.chunkMarkdown(data)
	case KindJSON:
		return c.chunkJSON(data)
	case KindJavaScript:
		return c.chunkJavaScript(path, data)
	case KindHTML:
		return c.chunkHTML(data)
	case KindImage:
		return c.chunkImage(path)
	case KindText:
		return c.chunkText(data)
	default:
		return c.chunkUnknown(data)
	}
}

// chunkImage emits the single empty-content piece for a binary asset.
func (c *Chunker) chunkImage(path string) []Piece {
	return []Piece{{
		Content:   "",
		StartLine: 1,
		EndLine:   1,
		AssetPath: "images/" + path,
	}}
}
