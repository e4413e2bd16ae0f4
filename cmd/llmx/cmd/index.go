package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/johnzfitch/llmx/internal/embed"
	"github.com/johnzfitch/llmx/internal/ingest"
	"github.com/johnzfitch/llmx/internal/scanner"
	"github.com/johnzfitch/llmx/internal/ui"
	"github.com/johnzfitch/llmx/pkg/engine"
)

func newIndexCmd() *cobra.Command {
	var withEmbeddings bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Scan the project and build the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ui.New(os.Stdout)

			root, err := projectRoot()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			batch, err := scanner.New(root, cfg.Ingest).Scan()
			if err != nil {
				return err
			}

			idx := engine.Ingest(batch, ingest.Options{IngestConfig: cfg.Ingest})

			if withEmbeddings {
				embedder, err := embed.NewCached(embed.NewStatic(cfg.Embed.Dimensions), cfg.Embed.CacheSize)
				if err != nil {
					return err
				}
				idx, err = engine.EmbedIndex(idx, embedder)
				if err != nil {
					return err
				}
			}

			st, err := storeFor(root)
			if err != nil {
				return err
			}
			if err := st.Save(idx); err != nil {
				return err
			}

			out.Successf("indexed %d files into %d chunks", idx.Stats.TotalFiles, idx.Stats.TotalChunks)
			out.Dimf("index_id %s", idx.IndexID)
			for _, w := range idx.Warnings {
				out.Warnf("%s: %s", w.Path, w.Reason)
			}
			if len(idx.Warnings) > 0 {
				return partialErr(len(idx.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withEmbeddings, "embed", false, "attach offline static embeddings for hybrid search")
	return cmd
}
