package search

import "sort"

// DefaultRRFK is the standard reciprocal-rank-fusion smoothing constant,
// empirically validated across domains.
const DefaultRRFK = 60

// fused accumulates one chunk's contributions from both lists.
type fused struct {
	result Result
	score  float64
}

// FuseLinear combines BM25 and vector candidate lists by normalized linear
// combination. BM25 scores are divided by the list maximum (a non-positive
// maximum zeroes the BM25 side); vector similarities are clamped to [0,1].
// Chunks present in only one list contribute 0 from the other side. Returns
// the top limit results by fused score, ties broken by chunk id ascending.
func FuseLinear(bm25, vec []Result, w Weights, limit int) []Result {
	acc := make(map[string]*fused, len(bm25)+len(vec))

	maxBM := 0.0
	for _, r := range bm25 {
		if r.Score > maxBM {
			maxBM = r.Score
		}
	}
	for _, r := range bm25 {
		norm := 0.0
		if maxBM > 0 {
			norm = r.Score / maxBM
		}
		acc[r.ChunkID] = &fused{result: r, score: w.BM25 * norm}
	}

	for _, r := range vec {
		clamped := r.Score
		if clamped < 0 {
			clamped = 0
		} else if clamped > 1 {
			clamped = 1
		}
		if existing, ok := acc[r.ChunkID]; ok {
			existing.score += w.Semantic * clamped
		} else {
			acc[r.ChunkID] = &fused{result: r, score: w.Semantic * clamped}
		}
	}

	return rankFused(acc, limit)
}

// FuseRRF combines the lists by reciprocal rank: each list contributes
// 1/(k + rank) for the chunks it contains, nothing for absent chunks.
func FuseRRF(bm25, vec []Result, k, limit int) []Result {
	if k <= 0 {
		k = DefaultRRFK
	}
	acc := make(map[string]*fused, len(bm25)+len(vec))

	for rank, r := range bm25 {
		acc[r.ChunkID] = &fused{result: r, score: 1 / float64(k+rank+1)}
	}
	for rank, r := range vec {
		contrib := 1 / float64(k+rank+1)
		if existing, ok := acc[r.ChunkID]; ok {
			existing.score += contrib
		} else {
			acc[r.ChunkID] = &fused{result: r, score: contrib}
		}
	}

	return rankFused(acc, limit)
}

// rankFused orders fused results by score descending, chunk id ascending,
// and truncates to limit with the fused score installed.
func rankFused(acc map[string]*fused, limit int) []Result {
	out := make([]Result, 0, len(acc))
	for _, f := range acc {
		r := f.result
		r.Score = f.score
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ChunkID < out[j].ChunkID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
