package search

import (
	"math"
	"sort"

	"github.com/johnzfitch/llmx/internal/index"
	"github.com/johnzfitch/llmx/internal/tokenizer"
)

// Okapi BM25 parameters.
const (
	K1 = 1.2
	B  = 0.75
)

// BM25 scores chunks against a query and returns up to limit results sorted
// by score descending, ties broken by chunk id ascending. A query that
// tokenizes to nothing yields an empty list. Filters are applied before
// ranking, so excluded chunks are never scored.
func BM25(idx *index.IndexFile, query string, f *Filters, limit int) []Result {
	terms := tokenizer.TokenizeUnique(query)
	if len(terms) == 0 || idx.DocCount() == 0 {
		return []Result{}
	}

	nDocs := float64(idx.DocCount())
	avg := idx.AvgDocLength
	if avg <= 0 {
		avg = 1
	}

	scores := make(map[string]float64)
	for _, term := range terms {
		postings := idx.Postings(term)
		if len(postings) == 0 {
			continue
		}
		df := float64(len(postings))
		idf := math.Log(1 + (nDocs-df+0.5)/(df+0.5))

		for _, p := range postings {
			c := idx.ChunkByID(p.ChunkID)
			if c == nil || !f.Match(c) {
				continue
			}
			tf := float64(p.TF)
			docLen := float64(idx.ChunkLengths[p.ChunkID])
			denom := tf + K1*(1-B+B*docLen/avg)
			scores[p.ChunkID] += idf * ((K1 + 1) * tf) / denom
		}
	}

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		si, sj := scores[ids[i]], scores[ids[j]]
		if si != sj {
			return si > sj
		}
		return ids[i] < ids[j]
	})

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		results = append(results, toResult(idx, id, scores[id]))
	}
	return results
}

// toResult renders the §4.6 record shape for a chunk.
func toResult(idx *index.IndexFile, id string, score float64) Result {
	c := idx.ChunkByID(id)
	return Result{
		ChunkID:     c.ID,
		Ref:         c.Ref,
		Score:       score,
		Path:        c.Path,
		StartLine:   c.StartLine,
		EndLine:     c.EndLine,
		Snippet:     Snippet(c.Content),
		HeadingPath: c.HeadingPath,
	}
}
