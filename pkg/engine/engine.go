// Package engine is the public surface of the llmx core: ingestion,
// selective update, hybrid search, chunk lookup, outline/symbol listing,
// embedding attachment, and artifact export. Collaborators (CLI, MCP
// server, UI harnesses) call only this package.
package engine

import (
	"github.com/johnzfitch/llmx/internal/embed"
	"github.com/johnzfitch/llmx/internal/export"
	"github.com/johnzfitch/llmx/internal/index"
	"github.com/johnzfitch/llmx/internal/ingest"
	"github.com/johnzfitch/llmx/internal/llmerr"
	"github.com/johnzfitch/llmx/internal/search"
)

// Re-exported types so collaborators need only this package.
type (
	// IndexFile is the durable aggregate.
	IndexFile = index.IndexFile
	// Chunk is the central retrievable entity.
	Chunk = index.Chunk
	// FileInput is one file entering ingestion.
	FileInput = ingest.FileInput
	// IngestOptions bounds an ingest or update run.
	IngestOptions = ingest.Options
	// Filters restricts search candidates.
	Filters = search.Filters
	// SearchOptions selects retrieval behavior.
	SearchOptions = search.Options
	// Response is a search response.
	Response = search.Response
	// Result is one search hit.
	Result = search.Result
	// ZipVariant selects ZIP packaging.
	ZipVariant = export.Variant
)

// ZIP variants.
const (
	ZipStore   = export.VariantStore
	ZipDeflate = export.VariantDeflate
	ZipFull    = export.VariantFull
)

// DefaultIngestOptions returns the spec defaults.
func DefaultIngestOptions() IngestOptions {
	return ingest.DefaultOptions()
}

// DefaultSearchOptions returns the spec defaults.
func DefaultSearchOptions() SearchOptions {
	return search.DefaultOptions()
}

// Ingest builds a fresh IndexFile from a batch. Recoverable input problems
// surface as warnings on the result, never as errors.
func Ingest(batch []FileInput, opts IngestOptions) *IndexFile {
	return ingest.Ingest(batch, opts)
}

// Update produces a new IndexFile, retaining keepPaths verbatim (chunks and
// refs included), replacing batch paths wholesale, and removing the rest.
// The embedding block is cleared; attach a replacement with SetEmbeddings.
func Update(existing *IndexFile, batch []FileInput, keepPaths []string, opts IngestOptions) *IndexFile {
	return ingest.Update(existing, batch, keepPaths, opts)
}

// Search runs one query against an index.
func Search(idx *IndexFile, query string, filters *Filters, limit int, opts SearchOptions) (*Response, error) {
	return search.NewEngine(idx).Search(query, filters, limit, opts)
}

// GetChunk resolves a chunk by id.
func GetChunk(idx *IndexFile, id string) (*Chunk, error) {
	if c := idx.ChunkByID(id); c != nil {
		return c, nil
	}
	return nil, llmerr.UnknownChunk(id)
}

// GetChunkByRef resolves a chunk by ref.
func GetChunkByRef(idx *IndexFile, ref string) (*Chunk, error) {
	if _, err := index.ParseRef(ref); err != nil {
		return nil, err
	}
	if c := idx.ChunkByRef(ref); c != nil {
		return c, nil
	}
	return nil, llmerr.InvalidRef(ref)
}

// ListOutline returns the ordered heading paths of a file.
func ListOutline(idx *IndexFile, path string) [][]string {
	return idx.Outline(path)
}

// ListSymbols returns the ordered symbols of a file.
func ListSymbols(idx *IndexFile, path string) []string {
	return idx.Symbols(path)
}

// SetEmbeddings validates and attaches an embedding block, returning a new
// IndexFile stamped with the model id.
func SetEmbeddings(idx *IndexFile, vectors [][]float32, modelID string) (*IndexFile, error) {
	return idx.WithEmbeddings(vectors, modelID)
}

// EmbedIndex runs an embedder over every chunk and attaches the result.
func EmbedIndex(idx *IndexFile, embedder embed.Embedder) (*IndexFile, error) {
	texts := make([]string, len(idx.Chunks))
	for i := range idx.Chunks {
		texts[i] = idx.Chunks[i].Content
	}
	vectors, err := embedder.EmbedBatch(texts)
	if err != nil {
		return nil, err
	}
	return idx.WithEmbeddings(vectors, embedder.ModelID())
}

// ExportLLMPointer renders llm.md.
func ExportLLMPointer(idx *IndexFile) string {
	return export.Pointer(idx)
}

// ExportManifestLLMTSV renders manifest.llm.tsv.
func ExportManifestLLMTSV(idx *IndexFile) string {
	return export.Manifest(idx)
}

// ExportChunksDir renders every chunks/<ref>.md artifact.
func ExportChunksDir(idx *IndexFile) ([]export.RefFile, error) {
	return export.ChunksDir(idx)
}

// ExportZip packages the artifact set.
func ExportZip(idx *IndexFile, variant ZipVariant) ([]byte, error) {
	return export.Zip(idx, variant)
}
