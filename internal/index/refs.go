package index

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/johnzfitch/llmx/internal/llmerr"
)

// refMinDigits is the minimum zero-padded width of a ref's base36 body.
const refMinDigits = 4

// refPattern validates external refs.
var refPattern = regexp.MustCompile(`^c[0-9a-z]{4,}$`)

// FormatRef renders a ref from its sequence number: "c" plus the base36
// representation zero-padded to at least four digits.
func FormatRef(seq int) string {
	body := strconv.FormatInt(int64(seq), 36)
	if pad := refMinDigits - len(body); pad > 0 {
		body = strings.Repeat("0", pad) + body
	}
	return "c" + body
}

// ParseRef recovers the sequence number from a ref.
func ParseRef(ref string) (int, error) {
	if !refPattern.MatchString(ref) {
		return 0, llmerr.InvalidRef(ref)
	}
	n, err := strconv.ParseInt(ref[1:], 36, 64)
	if err != nil {
		return 0, llmerr.InvalidRef(ref)
	}
	return int(n), nil
}

// AssignRefs gives every chunk without a ref the next sequence number, in
// canonical order: (path, start_line, end_line, id). Retained chunks keep
// their refs; sequence numbers are never reused after removal. Chunk.Ref is
// synchronized with ChunkRefs for every chunk.
func (x *IndexFile) AssignRefs() {
	if x.ChunkRefs == nil {
		x.ChunkRefs = make(map[string]string, len(x.Chunks))
	}

	order := make([]int, len(x.Chunks))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ca, cb := &x.Chunks[order[a]], &x.Chunks[order[b]]
		if ca.Path != cb.Path {
			return ca.Path < cb.Path
		}
		if ca.StartLine != cb.StartLine {
			return ca.StartLine < cb.StartLine
		}
		if ca.EndLine != cb.EndLine {
			return ca.EndLine < cb.EndLine
		}
		return ca.ID < cb.ID
	})

	for _, i := range order {
		c := &x.Chunks[i]
		if ref, ok := x.ChunkRefs[c.ID]; ok {
			c.Ref = ref
			continue
		}
		x.LastRefSeq++
		ref := FormatRef(x.LastRefSeq)
		x.ChunkRefs[c.ID] = ref
		c.Ref = ref
	}

	x.invalidateDerived()
	x.EnsureDerived()
}

// PruneRefs drops ref entries whose chunks no longer exist. LastRefSeq is
// left untouched so removed sequence numbers stay retired.
func (x *IndexFile) PruneRefs() {
	live := make(map[string]struct{}, len(x.Chunks))
	for i := range x.Chunks {
		live[x.Chunks[i].ID] = struct{}{}
	}
	for id := range x.ChunkRefs {
		if _, ok := live[id]; !ok {
			delete(x.ChunkRefs, id)
		}
	}
}
