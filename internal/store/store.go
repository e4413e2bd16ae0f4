// Package store persists IndexFile snapshots. The store is deliberately
// thin: it serializes the aggregate with msgpack and rebuilds the derived
// inverted index on load. Writes are atomic (temp file + rename) and
// guarded by an advisory file lock so concurrent llmx processes do not
// interleave.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/johnzfitch/llmx/internal/index"
	"github.com/johnzfitch/llmx/internal/llmerr"
)

// SnapshotName is the default snapshot file name.
const SnapshotName = "index.llmx"

// snapshot is the on-disk envelope. The inverted index is omitted; it is
// derivable from the chunk set and rebuilt by Load.
type snapshot struct {
	Magic   string           `msgpack:"magic"`
	Version int              `msgpack:"version"`
	Index   *index.IndexFile `msgpack:"index"`
}

const snapshotMagic = "llmx-snapshot"

// Store reads and writes snapshots under a directory.
type Store struct {
	dir  string
	lock *flock.Flock
}

// New creates a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &Store{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".llmx.lock")),
	}, nil
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, SnapshotName)
}

// Save writes the index atomically under the advisory lock.
func (s *Store) Save(x *index.IndexFile) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := msgpack.Marshal(&snapshot{
		Magic:   snapshotMagic,
		Version: index.SchemaVersion,
		Index:   x,
	})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load reads and validates the snapshot. The caller owns the returned
// IndexFile.
func (s *Store) Load() (*index.IndexFile, error) {
	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, llmerr.Newf(llmerr.CodeInvalidInput, "no index at %s; run llmx index first", s.Path())
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, llmerr.CorruptIndex("snapshot does not decode")
	}
	if snap.Magic != snapshotMagic {
		return nil, llmerr.CorruptIndex("bad snapshot magic")
	}
	if snap.Version != index.SchemaVersion {
		return nil, llmerr.CorruptIndex(fmt.Sprintf("snapshot schema %d, expected %d", snap.Version, index.SchemaVersion))
	}
	if snap.Index == nil {
		return nil, llmerr.CorruptIndex("snapshot has no index")
	}

	if err := snap.Index.Validate(); err != nil {
		return nil, err
	}
	snap.Index.EnsureDerived()
	return snap.Index, nil
}

// Exists reports whether a snapshot is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}
