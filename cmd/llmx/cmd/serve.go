package cmd

import (
	"github.com/spf13/cobra"

	"github.com/johnzfitch/llmx/internal/mcp"
	"github.com/johnzfitch/llmx/pkg/engine"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the index over MCP stdio",
		Long: `serve loads the index and exposes it to MCP clients (Claude Code,
Cursor, and other agents) over stdio with four tools: search, get_chunk,
outline, and symbols.`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			server := mcp.NewServer(engine.NewHandle(idx))
			return server.Serve(cmd.Context())
		},
	}
	return cmd
}
