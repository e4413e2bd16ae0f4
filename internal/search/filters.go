package search

import (
	"strings"

	"github.com/johnzfitch/llmx/internal/chunk"
	"github.com/johnzfitch/llmx/internal/index"
)

// Filters restricts the candidate set. All set constraints are
// AND-combined; the zero value matches everything. A filter that matches
// nothing yields an empty result list, not an error.
type Filters struct {
	// PathExact requires an exact path match.
	PathExact string
	// PathPrefix requires a byte-prefix match on the path.
	PathPrefix string
	// Kind requires equality on the chunk kind.
	Kind chunk.Kind
	// HeadingPrefix requires the heading path joined with "/" to have this
	// byte prefix.
	HeadingPrefix string
	// SymbolPrefix requires a non-empty symbol with this byte prefix.
	SymbolPrefix string
}

// Empty reports whether no constraint is set.
func (f *Filters) Empty() bool {
	return f == nil || (f.PathExact == "" && f.PathPrefix == "" &&
		f.Kind == "" && f.HeadingPrefix == "" && f.SymbolPrefix == "")
}

// Match applies all set constraints to a chunk.
func (f *Filters) Match(c *index.Chunk) bool {
	if f == nil {
		return true
	}
	if f.PathExact != "" && c.Path != f.PathExact {
		return false
	}
	if f.PathPrefix != "" && !strings.HasPrefix(c.Path, f.PathPrefix) {
		return false
	}
	if f.Kind != "" && c.Kind != f.Kind {
		return false
	}
	if f.HeadingPrefix != "" && !strings.HasPrefix(index.JoinHeadingPath(c.HeadingPath), f.HeadingPrefix) {
		return false
	}
	if f.SymbolPrefix != "" && (c.Symbol == "" || !strings.HasPrefix(c.Symbol, f.SymbolPrefix)) {
		return false
	}
	return true
}
