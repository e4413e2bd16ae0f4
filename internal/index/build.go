package index

import (
	"sort"

	"github.com/johnzfitch/llmx/internal/chunk"
	"github.com/johnzfitch/llmx/internal/hashing"
	"github.com/johnzfitch/llmx/internal/tokenizer"
)

// Finalize sorts the aggregate canonically, recomputes the index id, the
// inverted index, the length tables, and the stats. It is called by the
// ingester after the chunk set is complete and by selective update after
// merging.
func (x *IndexFile) Finalize() {
	x.SchemaVersion = SchemaVersion

	sort.Slice(x.Files, func(i, j int) bool { return x.Files[i].Path < x.Files[j].Path })
	sort.Slice(x.Chunks, func(i, j int) bool {
		if x.Chunks[i].Path != x.Chunks[j].Path {
			return x.Chunks[i].Path < x.Chunks[j].Path
		}
		return x.Chunks[i].ChunkIndex < x.Chunks[j].ChunkIndex
	})

	entries := make([]hashing.FileEntry, len(x.Files))
	for i, f := range x.Files {
		entries[i] = hashing.FileEntry{Path: f.Path, Fingerprint: f.Fingerprint}
	}
	x.IndexID = hashing.IndexID(entries)

	x.rebuildLengths()
	x.rebuildStats()
	x.invalidateDerived()
	x.EnsureDerived()
}

// EnsureDerived builds the lookup and posting tables if absent. Concurrent
// readers require the tables to exist before the IndexFile is shared, so
// Finalize, the snapshot store, and the search engine all call this from a
// single-threaded context.
func (x *IndexFile) EnsureDerived() {
	x.ensureLookups()
	x.ensureInverted()
}

// rebuildLengths recomputes chunk_lengths and avg_doc_length from content.
func (x *IndexFile) rebuildLengths() {
	x.ChunkLengths = make(map[string]int, len(x.Chunks))
	total := 0
	for i := range x.Chunks {
		n := tokenizer.CountTerms(x.Chunks[i].Content)
		x.ChunkLengths[x.Chunks[i].ID] = n
		total += n
	}
	if len(x.Chunks) == 0 {
		x.AvgDocLength = 0
		return
	}
	x.AvgDocLength = float64(total) / float64(len(x.Chunks))
}

// rebuildStats recomputes the summary statistics.
func (x *IndexFile) rebuildStats() {
	stats := Stats{
		TotalFiles:  len(x.Files),
		TotalChunks: len(x.Chunks),
		Kinds:       make(map[chunk.Kind]int),
	}
	tokens := 0
	for i := range x.Chunks {
		stats.Kinds[x.Chunks[i].Kind]++
		tokens += x.Chunks[i].TokenEstimate
	}
	if len(x.Chunks) > 0 {
		stats.AvgTokens = float64(tokens) / float64(len(x.Chunks))
	}
	x.Stats = stats
}

// invalidateDerived drops the lazily built lookup and posting tables.
func (x *IndexFile) invalidateDerived() {
	x.postings = nil
	x.byID = nil
	x.byRef = nil
}

// ensureLookups builds the id and ref lookup tables on first use.
func (x *IndexFile) ensureLookups() {
	if x.byID != nil {
		return
	}
	x.byID = make(map[string]int, len(x.Chunks))
	x.byRef = make(map[string]int, len(x.Chunks))
	for i := range x.Chunks {
		x.byID[x.Chunks[i].ID] = i
		if x.Chunks[i].Ref != "" {
			x.byRef[x.Chunks[i].Ref] = i
		}
	}
}

// ensureInverted builds the posting lists on first use. The inverted index
// is derivable from the chunk set alone, so persistence omits it and this
// rebuild runs after every load. Cost is linear in total tokens.
func (x *IndexFile) ensureInverted() {
	if x.postings != nil {
		return
	}
	x.postings = make(map[string][]Posting)

	for i := range x.Chunks {
		id := x.Chunks[i].ID
		freqs := make(map[string]int)
		for term := range tokenizer.TokenizeIter(x.Chunks[i].Content) {
			freqs[term]++
		}
		for term, tf := range freqs {
			x.postings[term] = append(x.postings[term], Posting{ChunkID: id, TF: tf})
		}
	}

	// Posting lists are ordered by chunk id for binary search during
	// filter pruning.
	for term := range x.postings {
		list := x.postings[term]
		sort.Slice(list, func(i, j int) bool { return list[i].ChunkID < list[j].ChunkID })
	}
}
