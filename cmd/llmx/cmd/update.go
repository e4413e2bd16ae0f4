package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnzfitch/llmx/internal/embed"
	"github.com/johnzfitch/llmx/internal/hashing"
	"github.com/johnzfitch/llmx/internal/ingest"
	"github.com/johnzfitch/llmx/internal/scanner"
	"github.com/johnzfitch/llmx/internal/ui"
	"github.com/johnzfitch/llmx/pkg/engine"
)

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Re-scan the project and selectively update the index",
		Long: `update re-scans the tree, fingerprints every file, and rebuilds only
what changed: unchanged files keep their chunks and refs verbatim, changed
files are re-chunked, and deleted files are removed. Refs of retained
chunks never change.`,
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
			st, err := storeFor(root)
			if err != nil {
				return err
			}
			existing, err := st.Load()
			if err != nil {
				return err
			}

			batch, err := scanner.New(root, cfg.Ingest).Scan()
			if err != nil {
				return err
			}

			// Partition the scan against the existing fingerprints.
			known := make(map[string]string, len(existing.Files))
			for _, f := range existing.Files {
				known[f.Path] = f.Fingerprint
			}

			var changed []ingest.FileInput
			var keep []string
			for _, fi := range batch {
				fp := hashing.SHA256Hex(fi.Data)
				if known[fi.Path] == fp {
					keep = append(keep, fi.Path)
					continue
				}
				fi.Fingerprint = fp
				changed = append(changed, fi)
			}

			hadStatic := strings.HasPrefix(existing.EmbeddingModel, "static-")
			staticDims := existing.EmbeddingDim()

			idx := engine.Update(existing, changed, keep, ingest.Options{IngestConfig: cfg.Ingest})

			// Updates clear embeddings; restore them when the previous index
			// used the offline embedder, so hybrid search keeps working.
			if hadStatic {
				embedder, err := embed.NewCached(embed.NewStatic(staticDims), cfg.Embed.CacheSize)
				if err != nil {
					return err
				}
				idx, err = engine.EmbedIndex(idx, embedder)
				if err != nil {
					return err
				}
			}

			if err := st.Save(idx); err != nil {
				return err
			}

			out.Successf("updated: %d changed, %d kept, %d total chunks",
				len(changed), len(keep), idx.Stats.TotalChunks)
			for _, w := range idx.Warnings {
				out.Warnf("%s: %s", w.Path, w.Reason)
			}
			if len(idx.Warnings) > 0 {
				return partialErr(len(idx.Warnings))
			}
			return nil
		},
	}
	return cmd
}
