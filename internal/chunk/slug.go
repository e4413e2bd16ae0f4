package chunk

import (
	"path"
	"strings"
	"unicode"
)

// SlugMaxLen caps slug length in characters.
const SlugMaxLen = 32

// addressSlugChars is how much of an address participates in a slug.
const addressSlugChars = 32

// Slug derives the short semantic label for a piece: the filename stem plus
// the most local context (last heading, symbol, or address head), normalized
// to lowercase dash-separated form and truncated to SlugMaxLen.
func Slug(filePath string, p Piece) string {
	stem := path.Base(filePath)
	if ext := path.Ext(stem); ext != "" {
		stem = stem[:len(stem)-len(ext)]
	}

	label := stem
	switch {
	case len(p.HeadingPath) > 0:
		label += " " + p.HeadingPath[len(p.HeadingPath)-1]
	case p.Symbol != "":
		label += " " + p.Symbol
	case p.Address != "":
		addr := []rune(p.Address)
		if len(addr) > addressSlugChars {
			addr = addr[:addressSlugChars]
		}
		label += " " + string(addr)
	}

	return normalizeSlug(label)
}

// normalizeSlug lowercases, collapses non-alphanumeric runs to single
// dashes, trims edge dashes, and truncates to SlugMaxLen characters.
func normalizeSlug(s string) string {
	var runes []rune
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && len(runes) > 0 {
				runes = append(runes, '-')
			}
			pendingDash = false
			runes = append(runes, r)
		} else {
			pendingDash = true
		}
	}
	if len(runes) > SlugMaxLen {
		runes = runes[:SlugMaxLen]
		for len(runes) > 0 && runes[len(runes)-1] == '-' {
			runes = runes[:len(runes)-1]
		}
	}
	return string(runes)
}
