package chunk

import (
	"strings"
	"unicode/utf8"
)

// paragraph is a run of non-blank lines with its 0-based start index.
type paragraph struct {
	start int
	lines []string
}

// chunkText splits plain text at blank-line paragraph boundaries, grouping
// paragraphs up to the soft target and hard-capping every piece.
func (c *Chunker) chunkText(data []byte) []Piece {
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return c.textPieces(splitLines(text), 0)
}

// textPieces is the shared paragraph grouper, also used as the fallback for
// unparseable JSON and scripts. base is the 0-based index of lines[0] in
// the original file.
func (c *Chunker) textPieces(lines []string, base int) []Piece {
	paras := splitParagraphs(lines, base)
	if len(paras) == 0 {
		return nil
	}

	var pieces []Piece
	var group []paragraph
	groupLen := 0

	flush := func() {
		if len(group) == 0 {
			return
		}
		pieces = append(pieces, c.groupPieces(group)...)
		group = nil
		groupLen = 0
	}

	for _, p := range paras {
		pl := runeLen(strings.Join(p.lines, "\n"))
		join := pl
		if len(group) > 0 {
			join += 2 // blank-line separator
		}
		if len(group) > 0 && groupLen+join > c.bounds.TargetChars {
			flush()
			join = pl
		}
		group = append(group, p)
		groupLen += join
	}
	flush()

	return pieces
}

// groupPieces renders one paragraph group, splitting at the hard cap when
// the group exceeds it.
func (c *Chunker) groupPieces(group []paragraph) []Piece {
	var parts []string
	for _, p := range group {
		parts = append(parts, strings.Join(p.lines, "\n"))
	}
	content := strings.Join(parts, "\n\n")

	first := group[0]
	last := group[len(group)-1]
	startLine := first.start + 1
	endLine := last.start + len(last.lines)

	if runeLen(content) <= c.bounds.MaxChars {
		return []Piece{{Content: content, StartLine: startLine, EndLine: endLine}}
	}

	// Over the cap: re-split the whole span at line boundaries.
	span := make([]string, 0, last.start+len(last.lines)-first.start)
	for i := first.start; i < last.start+len(last.lines); i++ {
		span = append(span, lineOfGroup(group, i))
	}
	var pieces []Piece
	for _, seg := range capLines(span, first.start, c.bounds.MaxChars) {
		pieces = append(pieces, Piece{
			Content:   seg.content,
			StartLine: seg.start + 1,
			EndLine:   seg.end + 1,
		})
	}
	return pieces
}

// lineOfGroup reconstructs the line at absolute index i from a paragraph
// group; gaps between paragraphs are blank lines.
func lineOfGroup(group []paragraph, i int) string {
	for _, p := range group {
		if i >= p.start && i < p.start+len(p.lines) {
			return p.lines[i-p.start]
		}
	}
	return ""
}

// splitParagraphs groups consecutive non-blank lines.
func splitParagraphs(lines []string, base int) []paragraph {
	var paras []paragraph
	var cur *paragraph
	for i, line := range lines {
		if isBlank(line) {
			cur = nil
			continue
		}
		if cur == nil {
			paras = append(paras, paragraph{start: base + i})
			cur = &paras[len(paras)-1]
		}
		cur.lines = append(cur.lines, line)
	}
	return paras
}

// chunkUnknown interprets the raw bytes as UTF-8 with lossy replacement and
// emits a single piece truncated at the hard cap.
func (c *Chunker) chunkUnknown(data []byte) []Piece {
	text := strings.ToValidUTF8(string(data), string(utf8.RuneError))
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) > c.bounds.MaxChars {
		text = string(runes[:c.bounds.MaxChars])
	}
	text = strings.TrimRight(text, "\n")

	return []Piece{{
		Content:   text,
		StartLine: 1,
		EndLine:   len(splitLines(text)),
	}}
}
