package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnzfitch/llmx/internal/embed"
	"github.com/johnzfitch/llmx/internal/ingest"
	"github.com/johnzfitch/llmx/internal/scanner"
	"github.com/johnzfitch/llmx/internal/ui"
	"github.com/johnzfitch/llmx/internal/watcher"
	"github.com/johnzfitch/llmx/pkg/engine"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the project and keep the index current",
		Long: `watch observes the project tree and applies a selective update for
every debounced batch of file changes. Unchanged files keep their chunks
and refs; the snapshot is rewritten atomically after each update.`,
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
			idx, err := st.Load()
			if err != nil {
				return err
			}

			sc := scanner.New(root, cfg.Ingest)
			w, err := watcher.New(root, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
			if err != nil {
				return err
			}
			go w.Run(cmd.Context())

			out.Successf("watching %s (%d chunks indexed)", root, idx.Stats.TotalChunks)

			for {
				select {
				case <-cmd.Context().Done():
					return nil

				case events, ok := <-w.Events():
					if !ok {
						return nil
					}

					var touched []string
					deleted := make(map[string]bool)
					for _, ev := range events {
						if ev.Operation == watcher.OpDelete {
							deleted[ev.Path] = true
							continue
						}
						touched = append(touched, ev.Path)
					}

					batch, missing, err := sc.ScanPaths(touched)
					if err != nil {
						out.Errorf("scan failed: %v", err)
						continue
					}
					for _, m := range missing {
						deleted[m] = true
					}

					// Keep everything currently indexed except what changed
					// or disappeared.
					incoming := make(map[string]bool, len(batch))
					for _, fi := range batch {
						incoming[fi.Path] = true
					}
					var keep []string
					for _, f := range idx.Files {
						if !deleted[f.Path] && !incoming[f.Path] {
							keep = append(keep, f.Path)
						}
					}

					hadStatic := strings.HasPrefix(idx.EmbeddingModel, "static-")
					staticDims := idx.EmbeddingDim()

					next := engine.Update(idx, batch, keep, ingest.Options{IngestConfig: cfg.Ingest})
					if hadStatic {
						embedder, err := embed.NewCached(embed.NewStatic(staticDims), cfg.Embed.CacheSize)
						if err == nil {
							if embedded, embErr := engine.EmbedIndex(next, embedder); embErr == nil {
								next = embedded
							}
						}
					}

					if err := st.Save(next); err != nil {
						out.Errorf("save failed: %v", err)
						continue
					}
					idx = next
					out.Dimf("updated: %d changed, %d removed, %d chunks",
						len(batch), len(deleted), idx.Stats.TotalChunks)
				}
			}
		},
	}
	return cmd
}
