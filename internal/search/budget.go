package search

import "github.com/johnzfitch/llmx/internal/index"

// ApplyBudget walks the ranked results in order and attaches inline chunk
// content until adding a chunk's token estimate would exceed maxTokens.
// Under the default strict-prefix policy, the first overflow truncates all
// subsequent chunks; when strict is off, later smaller chunks may still fit
// the remaining budget. A budget of 0 returns ids only. Results are never
// dropped, only their content.
func ApplyBudget(idx *index.IndexFile, results []Result, maxTokens int, strict bool) ([]Result, []string) {
	var truncated []string
	spent := 0
	stopped := false

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = r
		c := idx.ChunkByID(r.ChunkID)
		if c == nil {
			out[i].Truncated = true
			truncated = append(truncated, r.ChunkID)
			continue
		}

		if stopped || spent+c.TokenEstimate > maxTokens {
			out[i].Truncated = true
			truncated = append(truncated, r.ChunkID)
			if strict {
				stopped = true
			}
			continue
		}

		spent += c.TokenEstimate
		out[i].Content = c.Content
	}

	return out, truncated
}
