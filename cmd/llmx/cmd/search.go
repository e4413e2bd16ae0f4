package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnzfitch/llmx/internal/chunk"
	"github.com/johnzfitch/llmx/internal/embed"
	"github.com/johnzfitch/llmx/internal/llmerr"
	"github.com/johnzfitch/llmx/internal/search"
	"github.com/johnzfitch/llmx/internal/ui"
	"github.com/johnzfitch/llmx/pkg/engine"
)

func newSearchCmd() *cobra.Command {
	var (
		limit         int
		semantic      bool
		strategy      string
		kind          string
		pathPrefix    string
		headingPrefix string
		symbolPrefix  string
		maxTokens     int
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ui.New(os.Stdout)
			query := strings.Join(args, " ")

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

			filters := &engine.Filters{
				PathPrefix:    pathPrefix,
				Kind:          chunk.Kind(kind),
				HeadingPrefix: headingPrefix,
				SymbolPrefix:  symbolPrefix,
			}

			opts := engine.DefaultSearchOptions()
			opts.MaxTokens = maxTokens
			if semantic {
				if !idx.HasEmbeddings() {
					return llmerr.EmbeddingsUnavailable()
				}
				if !strings.HasPrefix(idx.EmbeddingModel, "static-") {
					return llmerr.Newf(llmerr.CodeInvalidInput,
						"index embeddings come from %q; the CLI can only embed queries with the static model", idx.EmbeddingModel)
				}
				qe, err := embed.NewStatic(idx.EmbeddingDim()).Embed(query)
				if err != nil {
					return err
				}
				opts.UseSemantic = true
				opts.QueryEmbedding = qe
				if strings.EqualFold(strategy, "rrf") {
					opts.Strategy = search.StrategyRRF
				}
			}

			resp, err := engine.Search(idx, query, filters, limit, opts)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			if len(resp.Results) == 0 {
				out.Dimf("no results")
				return nil
			}
			for _, r := range resp.Results {
				out.Printf("%s  %s:%d-%d  %.3f\n", out.Ref(r.Ref), r.Path, r.StartLine, r.EndLine, r.Score)
				if len(r.HeadingPath) > 0 {
					out.Dimf("      %s", strings.Join(r.HeadingPath, " > "))
				}
				if r.Snippet != "" {
					out.Printf("      %s\n", r.Snippet)
				}
			}
			if len(resp.TruncatedIDs) > 0 {
				out.Dimf("%d result(s) over the token budget; fetch them by ref", len(resp.TruncatedIDs))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum results")
	cmd.Flags().BoolVar(&semantic, "semantic", false, "hybrid semantic ranking (requires an embedded index)")
	cmd.Flags().StringVar(&strategy, "strategy", "linear", "fusion strategy: linear or rrf")
	cmd.Flags().StringVar(&kind, "kind", "", "filter by chunk kind")
	cmd.Flags().StringVar(&pathPrefix, "path-prefix", "", "filter by path prefix")
	cmd.Flags().StringVar(&headingPrefix, "heading-prefix", "", "filter by heading path prefix")
	cmd.Flags().StringVar(&symbolPrefix, "symbol-prefix", "", "filter by symbol prefix")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 16000, "token budget for inline content (0 = refs only)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw response as JSON")
	return cmd
}
