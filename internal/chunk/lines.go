package chunk

import "strings"

// splitLines splits text into lines without the trailing artifact element a
// final newline would otherwise produce.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// runeLen counts characters, the unit every chunk size bound uses.
func runeLen(s string) int {
	return len([]rune(s))
}

// lineSeg is a capped run of content with its 0-based line index range.
type lineSeg struct {
	content string
	start   int // 0-based index of first line
	end     int // 0-based index of last line, inclusive
}

// capLines joins lines into segments no longer than max characters,
// splitting at line boundaries; base is the 0-based file index of lines[0].
// A single line longer than max is hard-split at the cap; its fragments
// share the same line index. Trailing blank lines are trimmed from every
// segment.
func capLines(lines []string, base, max int) []lineSeg {
	trimmed := trimTrailingBlank(lines)
	if len(trimmed) == 0 {
		return nil
	}

	var segs []lineSeg
	var cur []string
	curStart := base
	curLen := 0

	flush := func(endIdx int) {
		body := trimTrailingBlank(cur)
		if len(body) > 0 {
			segs = append(segs, lineSeg{
				content: strings.Join(body, "\n"),
				start:   curStart,
				end:     curStart + len(body) - 1,
			})
		}
		cur = nil
		curLen = 0
		curStart = endIdx
	}

	for i, line := range trimmed {
		lineIdx := base + i
		ll := runeLen(line)

		if len(cur) == 0 && isBlank(line) {
			continue
		}

		if ll > max {
			flush(lineIdx)
			for _, frag := range hardSplit(line, max) {
				segs = append(segs, lineSeg{content: frag, start: lineIdx, end: lineIdx})
			}
			curStart = lineIdx + 1
			continue
		}

		add := ll
		if len(cur) > 0 {
			add++ // joining newline
		}
		if len(cur) > 0 && curLen+add > max {
			flush(lineIdx)
			add = ll
		}
		if len(cur) == 0 {
			curStart = lineIdx
		}
		cur = append(cur, line)
		curLen += add
	}
	flush(base + len(trimmed))

	return segs
}

// hardSplit cuts s into fragments of at most max characters.
func hardSplit(s string, max int) []string {
	runes := []rune(s)
	var out []string
	for len(runes) > 0 {
		n := max
		if n > len(runes) {
			n = len(runes)
		}
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return out
}

// trimTrailingBlank drops trailing blank lines.
func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

// isBlank reports whether a line has no non-whitespace content.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
