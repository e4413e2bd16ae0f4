package chunk

import (
	"regexp"
	"strings"
)

// atxHeading matches ATX headings `#` through `######`.
var atxHeading = regexp.MustCompile(`^(#{1,6})[ \t]+(.*)$`)

// mdSection is a heading-delimited region of a markdown file.
type mdSection struct {
	headingPath []string
	start       int // 0-based index of the first line (the heading line)
	lines       []string
}

// chunkMarkdown splits markdown at ATX heading boundaries, carrying the
// ancestor heading stack onto every piece. Fenced code blocks are opaque:
// a `#` line inside a fence is content, not a boundary.
func (c *Chunker) chunkMarkdown(data []byte) []Piece {
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lines := splitLines(text)

	var sections []mdSection
	var titles [6]string
	current := mdSection{start: 0}

	inFence := false
	fenceMarker := ""

	for i, line := range lines {
		indentTrimmed := strings.TrimLeft(line, " \t")

		if inFence {
			current.lines = append(current.lines, line)
			if strings.HasPrefix(indentTrimmed, fenceMarker) {
				inFence = false
			}
			continue
		}

		switch {
		case strings.HasPrefix(indentTrimmed, "```"):
			inFence, fenceMarker = true, "```"
			current.lines = append(current.lines, line)
		case strings.HasPrefix(indentTrimmed, "~~~"):
			inFence, fenceMarker = true, "~~~"
			current.lines = append(current.lines, line)
		default:
			m := atxHeading.FindStringSubmatch(line)
			if m == nil {
				current.lines = append(current.lines, line)
				continue
			}

			sections = append(sections, current)

			level := len(m[1])
			titles[level-1] = strings.TrimSpace(m[2])
			for l := level; l < 6; l++ {
				titles[l] = ""
			}
			var headPath []string
			for l := 0; l < level; l++ {
				if titles[l] != "" {
					headPath = append(headPath, titles[l])
				}
			}

			current = mdSection{headingPath: headPath, start: i, lines: []string{line}}
		}
	}
	sections = append(sections, current)

	var pieces []Piece
	for _, sec := range sections {
		for _, seg := range capLines(sec.lines, sec.start, c.bounds.MaxChars) {
			pieces = append(pieces, Piece{
				Content:     seg.content,
				StartLine:   seg.start + 1,
				EndLine:     seg.end + 1,
				HeadingPath: sec.headingPath,
			})
		}
	}
	return pieces
}
