// Package scanner walks a directory tree and produces the ingest batch for
// the CLI and watcher collaborators. The engine itself never touches the
// filesystem; everything it sees comes through here as (path, bytes) pairs.
package scanner

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/johnzfitch/llmx/internal/config"
	"github.com/johnzfitch/llmx/internal/ingest"
)

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
}

// Scanner collects files under a root directory.
type Scanner struct {
	root   string
	cfg    config.IngestConfig
	logger *slog.Logger
}

// New creates a scanner for root.
func New(root string, cfg config.IngestConfig) *Scanner {
	return &Scanner{root: root, cfg: cfg, logger: slog.Default()}
}

// Scan walks the tree and returns the batch, sorted by path. Hidden files,
// skip-listed directories, and files filtered by allowed_extensions are
// omitted. Unreadable files are logged and skipped; the walk continues.
func (s *Scanner) Scan() ([]ingest.FileInput, error) {
	allowed := s.cfg.NormalizedExtensions()
	var batch []ingest.FileInput

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("scan error", slog.String("path", p), slog.String("error", err.Error()))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if p != s.root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if allowed != nil {
			if _, ok := allowed[strings.ToLower(filepath.Ext(name))]; !ok {
				return nil
			}
		}

		info, err := d.Info()
		if err != nil {
			s.logger.Warn("stat failed", slog.String("path", rel), slog.String("error", err.Error()))
			return nil
		}
		// Oversized files are skipped here to avoid reading them at all;
		// the ingester would only warn and drop them anyway.
		if s.cfg.MaxFileBytes > 0 && info.Size() > s.cfg.MaxFileBytes {
			s.logger.Warn("file exceeds max_file_bytes", slog.String("path", rel), slog.Int64("size", info.Size()))
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			s.logger.Warn("read failed", slog.String("path", rel), slog.String("error", err.Error()))
			return nil
		}

		batch = append(batch, ingest.FileInput{
			Path:    rel,
			Data:    data,
			MtimeMS: info.ModTime().UnixMilli(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
	return batch, nil
}

// ScanPaths reads only the named relative paths under the root. Missing
// files are returned in the second list; the watcher uses this to turn
// deletions into removals.
func (s *Scanner) ScanPaths(rels []string) ([]ingest.FileInput, []string, error) {
	var batch []ingest.FileInput
	var missing []string

	for _, rel := range rels {
		p := filepath.Join(s.root, filepath.FromSlash(rel))
		info, err := os.Stat(p)
		if err != nil {
			missing = append(missing, rel)
			continue
		}
		if info.IsDir() {
			continue
		}
		if s.cfg.MaxFileBytes > 0 && info.Size() > s.cfg.MaxFileBytes {
			s.logger.Warn("file exceeds max_file_bytes", slog.String("path", rel))
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			missing = append(missing, rel)
			continue
		}
		batch = append(batch, ingest.FileInput{
			Path:    rel,
			Data:    data,
			MtimeMS: info.ModTime().UnixMilli(),
		})
	}

	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
	return batch, missing, nil
}
