// Package cmd provides the CLI commands for llmx.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/johnzfitch/llmx/internal/config"
	"github.com/johnzfitch/llmx/internal/llmerr"
	"github.com/johnzfitch/llmx/internal/logging"
	"github.com/johnzfitch/llmx/internal/store"
)

// Exit codes for the CLI.
const (
	ExitOK       = 0
	ExitInvalid  = 2
	ExitPartial  = 3
	ExitInternal = 4
)

// exitError carries an explicit exit code through cobra.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// partialErr signals success with warnings (exit 3).
func partialErr(warnings int) error {
	return &exitError{code: ExitPartial, msg: fmt.Sprintf("completed with %d warning(s)", warnings)}
}

var (
	flagRoot     string
	flagLogLevel string
	logCleanup   func()
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llmx",
		Short: "Local-first codebase indexer for LLM agents",
		Long: `llmx turns a tree of source files into a searchable, portable artifact
for LLM agent workflows: deterministic semantic chunks with provenance,
a BM25 inverted index, optional embeddings for hybrid search, and compact
export formats (manifest TSV, per-chunk files, ZIP bundles).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cleanup, err := logging.SetupDefault(logging.Config{
				Level:         flagLogLevel,
				WriteToStderr: true,
			})
			if err != nil {
				return err
			}
			logCleanup = cleanup
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCleanup != nil {
				logCleanup()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&flagRoot, "root", "C", ".", "project root directory")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	err := NewRootCmd().Execute()
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			fmt.Fprintln(os.Stderr, ee.msg)
		}
		return ee.code
	}

	fmt.Fprintln(os.Stderr, "error:", err)

	var le *llmerr.Error
	if errors.As(err, &le) {
		switch le.Code {
		case llmerr.CodeInvalidInput, llmerr.CodeInvalidRef, llmerr.CodeUnknownChunk:
			return ExitInvalid
		}
	}
	return ExitInternal
}

// projectRoot resolves the --root flag to an absolute path.
func projectRoot() (string, error) {
	abs, err := filepath.Abs(flagRoot)
	if err != nil {
		return "", llmerr.InvalidInput("cannot resolve project root")
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", llmerr.Newf(llmerr.CodeInvalidInput, "project root %s is not a directory", abs)
	}
	return abs, nil
}

// loadConfig loads the project configuration.
func loadConfig(root string) (*config.Config, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, llmerr.Wrap(llmerr.CodeInvalidInput, err)
	}
	return cfg, nil
}

// storeFor opens the snapshot store under <root>/.llmx.
func storeFor(root string) (*store.Store, error) {
	return store.New(filepath.Join(root, ".llmx"))
}
