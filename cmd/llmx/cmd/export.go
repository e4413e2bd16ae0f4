package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/johnzfitch/llmx/internal/llmerr"
	"github.com/johnzfitch/llmx/internal/ui"
	"github.com/johnzfitch/llmx/pkg/engine"
)

func newExportCmd() *cobra.Command {
	var (
		outDir  string
		zipPath string
		variant string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the agent-facing artifacts (llm.md, manifest, chunks, ZIP)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ui.New(os.Stdout)

			if outDir == "" && zipPath == "" {
				return llmerr.InvalidInput("pass --out and/or --zip")
			}

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

			if outDir != "" {
				if err := writeArtifacts(idx, outDir); err != nil {
					return err
				}
				out.Successf("wrote artifacts to %s", outDir)
			}

			if zipPath != "" {
				v := engine.ZipVariant(variant)
				switch v {
				case engine.ZipStore, engine.ZipDeflate, engine.ZipFull:
				default:
					return llmerr.Newf(llmerr.CodeInvalidInput, "unknown zip variant %q", variant)
				}
				data, err := engine.ExportZip(idx, v)
				if err != nil {
					return err
				}
				if err := os.WriteFile(zipPath, data, 0o644); err != nil {
					return err
				}
				out.Successf("wrote %s (%d bytes)", zipPath, len(data))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "directory for llm.md, manifest.llm.tsv, chunks/, images/")
	cmd.Flags().StringVar(&zipPath, "zip", "", "path for the ZIP bundle")
	cmd.Flags().StringVar(&variant, "variant", string(engine.ZipDeflate), "zip variant: store, deflate, full")
	return cmd
}

// writeArtifacts materializes the artifact set under dir.
func writeArtifacts(idx *engine.IndexFile, dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "chunks"), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "llm.md"), []byte(engine.ExportLLMPointer(idx)), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.llm.tsv"), []byte(engine.ExportManifestLLMTSV(idx)), 0o644); err != nil {
		return err
	}

	files, err := engine.ExportChunksDir(idx)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, "chunks", f.Ref+".md"), f.Data, 0o644); err != nil {
			return err
		}
	}

	for assetPath, data := range idx.Assets {
		full := filepath.Join(dir, filepath.FromSlash(assetPath))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(full, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
