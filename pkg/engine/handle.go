package engine

import (
	"sync"

	"github.com/johnzfitch/llmx/internal/search"
)

// Handle owns one logical index with serialized mutation and concurrent
// reads. The IndexFile stays an immutable value: readers take a snapshot
// reference, writers compute a new value and swap it in. The MCP server
// wraps its index in a Handle.
type Handle struct {
	mu  sync.RWMutex
	idx *IndexFile
	eng *search.Engine
}

// NewHandle wraps an index.
func NewHandle(idx *IndexFile) *Handle {
	return &Handle{idx: idx, eng: search.NewEngine(idx)}
}

// Snapshot returns the current index value.
func (h *Handle) Snapshot() *IndexFile {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.idx
}

// Swap atomically replaces the index.
func (h *Handle) Swap(idx *IndexFile) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.idx = idx
	h.eng = search.NewEngine(idx)
}

// Search runs a query against the current snapshot.
func (h *Handle) Search(query string, filters *Filters, limit int, opts SearchOptions) (*Response, error) {
	h.mu.RLock()
	eng := h.eng
	h.mu.RUnlock()
	return eng.Search(query, filters, limit, opts)
}
