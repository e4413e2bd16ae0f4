package export

import (
	"fmt"
	"strings"

	"github.com/johnzfitch/llmx/internal/index"
)

// Pointer renders llm.md, the short document that tells an agent how to
// navigate the exported artifact set.
func Pointer(x *index.IndexFile) string {
	var b strings.Builder

	b.WriteString("# llmx index\n\n")
	fmt.Fprintf(&b, "- index_id: `%s`\n", x.IndexID)
	fmt.Fprintf(&b, "- files: %d\n", x.Stats.TotalFiles)
	fmt.Fprintf(&b, "- chunks: %d\n", x.Stats.TotalChunks)
	if x.EmbeddingModel != "" {
		fmt.Fprintf(&b, "- embedding_model: `%s`\n", x.EmbeddingModel)
	}
	b.WriteString("\n## Workflow\n\n")
	b.WriteString("1. Read `manifest.llm.tsv` to discover files and chunks. ")
	b.WriteString("`F` rows summarize files; `C` rows list chunks with their refs, line ranges, and token counts.\n")
	b.WriteString("2. Open `chunks/<ref>.md` for any chunk of interest; the front matter carries provenance ")
	b.WriteString("(path, lines, heading path, symbol).\n")
	b.WriteString("3. Binary assets referenced by chunks live under `images/`.\n")

	return b.String()
}
