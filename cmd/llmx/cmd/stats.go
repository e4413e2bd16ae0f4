package cmd

import (
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/johnzfitch/llmx/internal/chunk"
	"github.com/johnzfitch/llmx/internal/ui"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ui.New(os.Stdout)

			root, err := projectRoot()
			if err != nil {
				return err
			}
			st, err := storeFor(root)
			if err != nil {
				return err
			}
			idx, err := st.Load()
			if err != nil {
				return err
			}

			out.Printf("index_id        %s\n", idx.IndexID)
			out.Printf("files           %d\n", idx.Stats.TotalFiles)
			out.Printf("chunks          %d\n", idx.Stats.TotalChunks)
			out.Printf("avg tokens      %.1f\n", idx.Stats.AvgTokens)
			out.Printf("avg doc length  %.1f\n", idx.AvgDocLength)
			if idx.EmbeddingModel != "" {
				out.Printf("embeddings      %s (%d dims)\n", idx.EmbeddingModel, idx.EmbeddingDim())
			} else {
				out.Printf("embeddings      none\n")
			}

			kinds := make([]string, 0, len(idx.Stats.Kinds))
			for k := range idx.Stats.Kinds {
				kinds = append(kinds, string(k))
			}
			sort.Strings(kinds)
			for _, k := range kinds {
				out.Dimf("  %-12s %d", k, idx.Stats.Kinds[chunk.Kind(k)])
			}

			if len(idx.Warnings) > 0 {
				out.Warnf("%d warning(s) recorded at ingest", len(idx.Warnings))
			}
			return nil
		},
	}
	return cmd
}
