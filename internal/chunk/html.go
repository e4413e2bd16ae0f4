package chunk

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// chunkHTML streams the document through the html tokenizer, drops script
// and style elements, and splits at h1..h6 boundaries while maintaining the
// heading hierarchy. Line numbers refer to the original file, not the
// stripped view; they are section-granular.
func (c *Chunker) chunkHTML(data []byte) []Piece {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	z := html.NewTokenizer(bytes.NewReader(data))

	var pieces []Piece
	var titles [6]string
	var headPath []string

	line := 1 // current 1-based line of the next unconsumed token
	secStart := 1
	var secBuf strings.Builder

	flush := func(endLine int) {
		content := strings.TrimSpace(secBuf.String())
		secBuf.Reset()
		if content == "" {
			return
		}
		if endLine < secStart {
			endLine = secStart
		}
		hp := append([]string(nil), headPath...)
		if runeLen(content) <= c.bounds.MaxChars {
			pieces = append(pieces, Piece{
				Content:     content,
				StartLine:   secStart,
				EndLine:     endLine,
				HeadingPath: hp,
			})
			return
		}
		for _, seg := range capLines(splitLines(content), 0, c.bounds.MaxChars) {
			pieces = append(pieces, Piece{
				Content:     seg.content,
				StartLine:   secStart,
				EndLine:     endLine,
				HeadingPath: hp,
			})
		}
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}

		raw := string(z.Raw())
		tokenStart := line
		line += strings.Count(raw, "\n")

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)

			if tag == "script" || tag == "style" {
				if tt == html.SelfClosingTagToken {
					continue
				}
				line += skipElement(z, tag)
				continue
			}

			if lvl := headingLevel(tag); lvl > 0 && tt == html.StartTagToken {
				flush(tokenStart - 1)

				title, rawHeading, consumedLines := readHeading(z, tag)
				line += consumedLines

				titles[lvl-1] = title
				for l := lvl; l < 6; l++ {
					titles[l] = ""
				}
				headPath = headPath[:0]
				for l := 0; l < lvl; l++ {
					if titles[l] != "" {
						headPath = append(headPath, titles[l])
					}
				}

				secStart = tokenStart
				secBuf.WriteString(raw)
				secBuf.WriteString(rawHeading)
				continue
			}

			secBuf.WriteString(raw)

		default:
			secBuf.WriteString(raw)
		}
	}
	flush(line)

	return pieces
}

// skipElement consumes tokens until the matching end tag, returning the
// number of newlines consumed. The element's content never reaches a piece.
func skipElement(z *html.Tokenizer, tag string) int {
	lines := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return lines
		}
		lines += strings.Count(string(z.Raw()), "\n")
		if tt == html.EndTagToken {
			name, _ := z.TagName()
			if string(name) == tag {
				return lines
			}
		}
	}
}

// readHeading consumes a heading element, returning its visible text, the
// raw bytes consumed, and the newline count.
func readHeading(z *html.Tokenizer, tag string) (title, raw string, lines int) {
	var text strings.Builder
	var rawBuf strings.Builder
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		r := string(z.Raw())
		rawBuf.WriteString(r)
		lines += strings.Count(r, "\n")

		if tt == html.TextToken {
			text.Write(z.Text())
			continue
		}
		if tt == html.EndTagToken {
			name, _ := z.TagName()
			if string(name) == tag {
				break
			}
		}
	}
	title = strings.Join(strings.Fields(text.String()), " ")
	return title, rawBuf.String(), lines
}

// headingLevel maps h1..h6 tags to their level, 0 otherwise.
func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}
