// Package index defines the IndexFile aggregate: files, chunks, refs, the
// inverted index, statistics, warnings, and the optional embedding block.
// An IndexFile is an immutable value once constructed; mutation happens by
// building a new one.
package index

import (
	"math"

	"github.com/johnzfitch/llmx/internal/chunk"
)

// SchemaVersion is the current IndexFile schema version.
const SchemaVersion = 1

// FileMeta describes one ingested file.
type FileMeta struct {
	// Path is the normalized relative path (forward slashes, no dot
	// segments).
	Path string `json:"path" msgpack:"path"`
	// Kind is the detected file kind.
	Kind chunk.Kind `json:"kind" msgpack:"kind"`
	// Size is the raw byte length.
	Size int64 `json:"size" msgpack:"size"`
	// Fingerprint is the SHA-256 of the raw bytes.
	Fingerprint string `json:"fingerprint" msgpack:"fingerprint"`
	// MtimeMS is the caller-supplied modification time in Unix
	// milliseconds, 0 when unknown. It never participates in identity.
	MtimeMS int64 `json:"mtime_ms,omitempty" msgpack:"mtime_ms"`
}

// Chunk is the central retrievable entity.
type Chunk struct {
	// ID is the SHA-256 of path + "\n" + content hash + "\n" + occurrence
	// ordinal.
	ID string `json:"id" msgpack:"id"`
	// ShortID is the 12-character display prefix of ID.
	ShortID string `json:"short_id" msgpack:"short_id"`
	// Ref is the stable token-efficient reference (c + base36 sequence).
	Ref string `json:"ref" msgpack:"ref"`
	// Slug is the short deterministic semantic label.
	Slug string `json:"slug" msgpack:"slug"`

	Path string     `json:"path" msgpack:"path"`
	Kind chunk.Kind `json:"kind" msgpack:"kind"`

	// ChunkIndex is the 0-based ordinal of this chunk within its file.
	ChunkIndex int `json:"chunk_index" msgpack:"chunk_index"`
	// StartLine and EndLine are 1-based inclusive and non-decreasing by
	// ChunkIndex within a file.
	StartLine int `json:"start_line" msgpack:"start_line"`
	EndLine   int `json:"end_line" msgpack:"end_line"`

	// Content is the chunk text as indexed. Empty for images.
	Content string `json:"content" msgpack:"content"`
	// ContentHash is the SHA-256 of Content.
	ContentHash string `json:"content_hash" msgpack:"content_hash"`
	// TokenEstimate is ceil(len(content in characters) / 4).
	TokenEstimate int `json:"token_estimate" msgpack:"token_estimate"`

	// HeadingPath is the ordered ancestor headings, empty when n/a.
	HeadingPath []string `json:"heading_path" msgpack:"heading_path"`
	// Symbol is the primary declared symbol name, empty when n/a.
	Symbol string `json:"symbol,omitempty" msgpack:"symbol"`
	// Address is the structural pointer (JSON path or range), empty when n/a.
	Address string `json:"address,omitempty" msgpack:"address"`
	// AssetPath is images/<path> for image chunks, empty otherwise.
	AssetPath string `json:"asset_path,omitempty" msgpack:"asset_path"`
}

// Warning is an ingestion notice attached to the IndexFile.
type Warning struct {
	Path   string `json:"path" msgpack:"path"`
	Reason string `json:"reason" msgpack:"reason"`
}

// Stats summarizes the index.
type Stats struct {
	TotalFiles  int                `json:"total_files" msgpack:"total_files"`
	TotalChunks int                `json:"total_chunks" msgpack:"total_chunks"`
	AvgTokens   float64            `json:"avg_tokens" msgpack:"avg_tokens"`
	Kinds       map[chunk.Kind]int `json:"kinds" msgpack:"kinds"`
}

// Posting is one (chunk, term frequency) pair in a term's posting list.
type Posting struct {
	ChunkID string
	TF      int
}

// IndexFile is the durable aggregate.
type IndexFile struct {
	SchemaVersion int    `json:"schema_version" msgpack:"schema_version"`
	IndexID       string `json:"index_id" msgpack:"index_id"`

	// Files is sorted by path.
	Files []FileMeta `json:"files" msgpack:"files"`
	// Chunks is sorted by (path, chunk_index).
	Chunks []Chunk `json:"chunks" msgpack:"chunks"`

	// ChunkRefs maps chunk id to ref, bijectively.
	ChunkRefs map[string]string `json:"chunk_refs" msgpack:"chunk_refs"`
	// LastRefSeq is the highest ref sequence number ever assigned.
	// Sequence numbers are never reused, even after removals.
	LastRefSeq int `json:"last_ref_seq" msgpack:"last_ref_seq"`

	// ChunkLengths maps chunk id to its post-tokenization term count.
	ChunkLengths map[string]int `json:"chunk_lengths" msgpack:"chunk_lengths"`
	// AvgDocLength is the mean of ChunkLengths values.
	AvgDocLength float64 `json:"avg_doc_length" msgpack:"avg_doc_length"`

	Stats    Stats     `json:"stats" msgpack:"stats"`
	Warnings []Warning `json:"warnings" msgpack:"warnings"`

	// Embeddings, when present, holds one unit vector per chunk in chunk
	// order. EmbeddingModel tracks which model produced them.
	Embeddings     [][]float32 `json:"embeddings,omitempty" msgpack:"embeddings"`
	EmbeddingModel string      `json:"embedding_model,omitempty" msgpack:"embedding_model"`

	// Assets preserves the raw bytes of binary-asset chunks, keyed by
	// asset path. The exporter reads them when packaging ZIP bundles.
	Assets map[string][]byte `json:"-" msgpack:"assets"`

	// Derived state, rebuilt on demand and never serialized.
	postings map[string][]Posting
	byID     map[string]int
	byRef    map[string]int
}

// EstimateTokens returns ceil(characters / 4), the spec's token estimate.
func EstimateTokens(content string) int {
	n := len([]rune(content))
	return int(math.Ceil(float64(n) / 4.0))
}

// DocCount returns the number of chunks (the BM25 document count).
func (x *IndexFile) DocCount() int {
	return len(x.Chunks)
}

// ChunkByID returns the chunk with the given id, or nil.
func (x *IndexFile) ChunkByID(id string) *Chunk {
	x.ensureLookups()
	if i, ok := x.byID[id]; ok {
		return &x.Chunks[i]
	}
	return nil
}

// ChunkByRef returns the chunk with the given ref, or nil.
func (x *IndexFile) ChunkByRef(ref string) *Chunk {
	x.ensureLookups()
	if i, ok := x.byRef[ref]; ok {
		return &x.Chunks[i]
	}
	return nil
}

// Postings returns the posting list for a term, sorted by chunk id.
func (x *IndexFile) Postings(term string) []Posting {
	x.ensureInverted()
	return x.postings[term]
}

// DocFreq returns the number of chunks containing term.
func (x *IndexFile) DocFreq(term string) int {
	return len(x.Postings(term))
}

// HasEmbeddings reports whether the embedding block is present.
func (x *IndexFile) HasEmbeddings() bool {
	return len(x.Embeddings) > 0
}

// EmbeddingDim returns the embedding dimension, or 0 when absent.
func (x *IndexFile) EmbeddingDim() int {
	if len(x.Embeddings) == 0 {
		return 0
	}
	return len(x.Embeddings[0])
}

// Outline returns the ordered distinct heading paths of a file.
func (x *IndexFile) Outline(path string) [][]string {
	var out [][]string
	var lastKey string
	for i := range x.Chunks {
		c := &x.Chunks[i]
		if c.Path != path || len(c.HeadingPath) == 0 {
			continue
		}
		key := joinHeadings(c.HeadingPath)
		if key == lastKey {
			continue
		}
		lastKey = key
		out = append(out, append([]string(nil), c.HeadingPath...))
	}
	return out
}

// Symbols returns the ordered distinct symbols of a file.
func (x *IndexFile) Symbols(path string) []string {
	var out []string
	var last string
	for i := range x.Chunks {
		c := &x.Chunks[i]
		if c.Path != path || c.Symbol == "" {
			continue
		}
		if c.Symbol == last {
			continue
		}
		last = c.Symbol
		out = append(out, c.Symbol)
	}
	return out
}

// joinHeadings joins a heading path with "/" for prefix matching.
func joinHeadings(hp []string) string {
	out := ""
	for i, h := range hp {
		if i > 0 {
			out += "/"
		}
		out += h
	}
	return out
}

// JoinHeadingPath is the canonical heading-path join used by filters.
func JoinHeadingPath(hp []string) string {
	return joinHeadings(hp)
}
