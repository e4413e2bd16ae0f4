// Package ingest turns a batch of files into an IndexFile: kind detection,
// size limits, chunk dispatch, identity assignment, and aggregation. Files
// are chunked in parallel but folded back in batch order, so worker count
// never affects the output.
package ingest

import (
	"path"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/johnzfitch/llmx/internal/chunk"
	"github.com/johnzfitch/llmx/internal/config"
	"github.com/johnzfitch/llmx/internal/hashing"
	"github.com/johnzfitch/llmx/internal/index"
)

// FileInput is one file entering ingestion.
type FileInput struct {
	// Path is the relative path; it is normalized before use.
	Path string
	// Data is the raw file content.
	Data []byte
	// MtimeMS is the modification time in Unix milliseconds, 0 if unknown.
	MtimeMS int64
	// Fingerprint is the SHA-256 of Data; computed when empty.
	Fingerprint string
}

// Options bounds an ingest run.
type Options struct {
	config.IngestConfig

	// Workers caps chunking parallelism; 0 means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the spec defaults.
func DefaultOptions() Options {
	return Options{IngestConfig: config.Default().Ingest}
}

// fileWork is one admitted file flowing through the chunking stage.
type fileWork struct {
	input  FileInput
	kind   chunk.Kind
	pieces []chunk.Piece
}

// Ingest builds a fresh IndexFile from a batch. Recoverable input problems
// (invalid paths, oversized files, exhausted budgets, excess chunks) become
// warnings on the result, never errors. Undecodable bytes are ingested as
// kind unknown with best-effort text and record no warning.
func Ingest(batch []FileInput, opts Options) *index.IndexFile {
	idx := &index.IndexFile{}
	work := admitBatch(batch, opts, idx)
	chunkAll(work, opts)
	assemble(idx, work, opts)
	idx.Finalize()
	idx.AssignRefs()
	return idx
}

// admitBatch normalizes, deduplicates, and filters the batch against the
// configured limits, recording warnings on idx.
func admitBatch(batch []FileInput, opts Options, idx *index.IndexFile) []*fileWork {
	allowed := opts.NormalizedExtensions()

	// Later entries win on duplicate paths.
	byPath := make(map[string]int)
	deduped := make([]FileInput, 0, len(batch))
	for _, fi := range batch {
		norm, ok := NormalizePath(fi.Path)
		if !ok {
			idx.Warnings = append(idx.Warnings, index.Warning{Path: fi.Path, Reason: "skipped: invalid path"})
			continue
		}
		fi.Path = norm
		if i, dup := byPath[norm]; dup {
			deduped[i] = fi
			continue
		}
		byPath[norm] = len(deduped)
		deduped = append(deduped, fi)
	}

	var work []*fileWork
	var total int64
	budgetExhausted := false

	for _, fi := range deduped {
		if allowed != nil {
			if _, ok := allowed[strings.ToLower(path.Ext(fi.Path))]; !ok {
				idx.Warnings = append(idx.Warnings, index.Warning{Path: fi.Path, Reason: "skipped: extension not allowed"})
				continue
			}
		}

		size := int64(len(fi.Data))
		if opts.MaxFileBytes > 0 && size > opts.MaxFileBytes {
			idx.Warnings = append(idx.Warnings, index.Warning{Path: fi.Path, Reason: "skipped: file exceeds max_file_bytes"})
			continue
		}
		if budgetExhausted {
			idx.Warnings = append(idx.Warnings, index.Warning{Path: fi.Path, Reason: "skipped: total byte budget exhausted"})
			continue
		}
		if opts.MaxTotalBytes > 0 && total+size > opts.MaxTotalBytes {
			budgetExhausted = true
			idx.Warnings = append(idx.Warnings, index.Warning{Path: fi.Path, Reason: "skipped: total byte budget exhausted"})
			continue
		}
		total += size

		if fi.Fingerprint == "" {
			fi.Fingerprint = hashing.SHA256Hex(fi.Data)
		}

		work = append(work, &fileWork{
			input: fi,
			kind:  DetectKind(fi.Path, fi.Data),
		})
	}

	return work
}

// chunkAll runs the chunker over admitted files. Parallelism is a
// map-then-concat: each worker writes only its own slot.
func chunkAll(work []*fileWork, opts Options) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	chunker := chunk.New(chunk.Bounds{
		TargetChars: opts.ChunkTargetChars,
		MaxChars:    opts.ChunkMaxChars,
	})
	defer chunker.Close()

	var g errgroup.Group
	g.SetLimit(workers)
	for _, w := range work {
		g.Go(func() error {
			w.pieces = chunker.Chunk(w.input.Path, w.input.Data, w.kind)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
}

// assemble turns pieces into identified chunks and file metadata on idx.
func assemble(idx *index.IndexFile, work []*fileWork, opts Options) {
	for _, w := range work {
		pieces := w.pieces
		if opts.MaxChunksPerFile > 0 && len(pieces) > opts.MaxChunksPerFile {
			pieces = pieces[:opts.MaxChunksPerFile]
			idx.Warnings = append(idx.Warnings, index.Warning{
				Path:   w.input.Path,
				Reason: "truncated: chunk count exceeds max_chunks_per_file",
			})
		}

		occurrences := make(map[string]int)
		for i, p := range pieces {
			contentHash := hashing.SHA256HexString(p.Content)
			occ := occurrences[contentHash]
			occurrences[contentHash] = occ + 1

			id := hashing.ChunkID(w.input.Path, contentHash, occ)
			idx.Chunks = append(idx.Chunks, index.Chunk{
				ID:            id,
				ShortID:       hashing.ShortID(id),
				Slug:          chunk.Slug(w.input.Path, p),
				Path:          w.input.Path,
				Kind:          w.kind,
				ChunkIndex:    i,
				StartLine:     p.StartLine,
				EndLine:       p.EndLine,
				Content:       p.Content,
				ContentHash:   contentHash,
				TokenEstimate: index.EstimateTokens(p.Content),
				HeadingPath:   p.HeadingPath,
				Symbol:        p.Symbol,
				Address:       p.Address,
				AssetPath:     p.AssetPath,
			})

			if p.AssetPath != "" {
				if idx.Assets == nil {
					idx.Assets = make(map[string][]byte)
				}
				idx.Assets[p.AssetPath] = w.input.Data
			}
		}

		idx.Files = append(idx.Files, index.FileMeta{
			Path:        w.input.Path,
			Kind:        w.kind,
			Size:        int64(len(w.input.Data)),
			Fingerprint: w.input.Fingerprint,
			MtimeMS:     w.input.MtimeMS,
		})
	}
}
