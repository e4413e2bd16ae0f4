package ingest

import (
	"github.com/johnzfitch/llmx/internal/index"
)

// Update produces a new IndexFile from an existing one: paths in keepPaths
// retain their file metadata, chunks, and refs verbatim; files in the batch
// replace any same-path entries wholesale; everything else is removed. The
// embedding block is cleared — callers re-attach a full replacement with
// WithEmbeddings if they have one. The existing index is never mutated.
func Update(existing *index.IndexFile, batch []FileInput, keepPaths []string, opts Options) *index.IndexFile {
	keep := make(map[string]bool, len(keepPaths))
	for _, p := range keepPaths {
		if norm, ok := NormalizePath(p); ok {
			keep[norm] = true
		}
	}

	out := &index.IndexFile{}
	if existing != nil {
		out.LastRefSeq = existing.LastRefSeq
		out.ChunkRefs = make(map[string]string)

		// Batch paths replace kept entries wholesale, so a path that is
		// both kept and incoming follows the incoming copy.
		incoming := make(map[string]bool, len(batch))
		for _, fi := range batch {
			if norm, ok := NormalizePath(fi.Path); ok {
				incoming[norm] = true
			}
		}

		for _, f := range existing.Files {
			if !keep[f.Path] || incoming[f.Path] {
				continue
			}
			out.Files = append(out.Files, f)
		}
		for i := range existing.Chunks {
			c := existing.Chunks[i]
			if !keep[c.Path] || incoming[c.Path] {
				continue
			}
			out.Chunks = append(out.Chunks, c)
			if ref, ok := existing.ChunkRefs[c.ID]; ok {
				out.ChunkRefs[c.ID] = ref
			}
			if c.AssetPath != "" && existing.Assets != nil {
				if data, ok := existing.Assets[c.AssetPath]; ok {
					if out.Assets == nil {
						out.Assets = make(map[string][]byte)
					}
					out.Assets[c.AssetPath] = data
				}
			}
		}
	}

	work := admitBatch(batch, opts, out)
	chunkAll(work, opts)
	assemble(out, work, opts)

	out.Finalize()
	out.AssignRefs()
	return out
}
