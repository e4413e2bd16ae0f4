package chunk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// jsonArrayGroup is the number of array elements per piece.
const jsonArrayGroup = 50

// chunkJSON parses the document and emits one piece per top-level key
// (objects) or per contiguous element range (arrays). Anything that fails
// to parse is handed to the text chunker. Line ranges are derived from byte
// offsets and are best-effort.
func (c *Chunker) chunkJSON(data []byte) []Piece {
	pieces, ok := c.tryChunkJSON(data)
	if !ok {
		return c.chunkText(data)
	}
	return pieces
}

func (c *Chunker) tryChunkJSON(data []byte) ([]Piece, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	li := newLineIndex(data)

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}

	delim, isDelim := tok.(json.Delim)
	if !isDelim {
		// Top-level scalar: one piece spanning the document.
		text := strings.TrimSpace(string(data))
		if text == "" {
			return nil, true
		}
		return c.jsonValuePieces(text, 1, li.last(), "$"), true
	}

	switch delim {
	case '{':
		return c.jsonObjectPieces(dec, data, li)
	case '[':
		return c.jsonArrayPieces(dec, data, li)
	default:
		return nil, false
	}
}

// jsonObjectPieces emits one piece per top-level key.
func (c *Chunker) jsonObjectPieces(dec *json.Decoder, data []byte, li *lineIndex) ([]Piece, bool) {
	var pieces []Piece
	for dec.More() {
		prevOff := int(dec.InputOffset())

		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}

		keyStart := scanForward(data, prevOff, '"')
		if keyStart < 0 {
			keyStart = prevOff
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false
		}
		endOff := int(dec.InputOffset())

		content := strings.TrimSpace(string(data[keyStart:endOff]))
		addr := "$." + key
		pieces = append(pieces, c.jsonValuePieces(content, li.lineAt(keyStart), li.lineAt(endOff-1), addr)...)
	}
	return pieces, true
}

// jsonArrayPieces emits one piece per contiguous group of up to
// jsonArrayGroup elements.
func (c *Chunker) jsonArrayPieces(dec *json.Decoder, data []byte, li *lineIndex) ([]Piece, bool) {
	var pieces []Piece
	index := 0
	for dec.More() {
		groupStart := index
		startOff := -1
		endOff := 0

		for n := 0; n < jsonArrayGroup && dec.More(); n++ {
			prevOff := int(dec.InputOffset())
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, false
			}
			if startOff < 0 {
				startOff = scanForwardValue(data, prevOff)
			}
			endOff = int(dec.InputOffset())
			index++
		}

		if startOff < 0 || endOff <= startOff {
			continue
		}
		content := strings.TrimSpace(string(data[startOff:endOff]))
		addr := fmt.Sprintf("$[%d:%d]", groupStart, index)
		pieces = append(pieces, c.jsonValuePieces(content, li.lineAt(startOff), li.lineAt(endOff-1), addr)...)
	}
	return pieces, true
}

// jsonValuePieces renders one addressed value, splitting at the hard cap
// when needed. Sub-pieces keep the same address; their line ranges stay
// within [startLine, endLine].
func (c *Chunker) jsonValuePieces(content string, startLine, endLine int, addr string) []Piece {
	if content == "" {
		return nil
	}
	if runeLen(content) <= c.bounds.MaxChars {
		return []Piece{{Content: content, StartLine: startLine, EndLine: endLine, Address: addr}}
	}

	var pieces []Piece
	for _, seg := range capLines(splitLines(content), 0, c.bounds.MaxChars) {
		s := startLine + seg.start
		e := startLine + seg.end
		if s > endLine {
			s = endLine
		}
		if e > endLine {
			e = endLine
		}
		pieces = append(pieces, Piece{Content: seg.content, StartLine: s, EndLine: e, Address: addr})
	}
	return pieces
}

// scanForward finds the next occurrence of b at or after off.
func scanForward(data []byte, off int, b byte) int {
	for i := off; i < len(data); i++ {
		if data[i] == b {
			return i
		}
	}
	return -1
}

// scanForwardValue finds the first byte of a JSON value at or after off,
// skipping whitespace and element separators.
func scanForwardValue(data []byte, off int) int {
	for i := off; i < len(data); i++ {
		switch data[i] {
		case ' ', '\t', '\n', '\r', ',':
		default:
			return i
		}
	}
	return off
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	newlines []int
}

func newLineIndex(data []byte) *lineIndex {
	var nl []int
	for i, b := range data {
		if b == '\n' {
			nl = append(nl, i)
		}
	}
	return &lineIndex{newlines: nl}
}

// lineAt returns the 1-based line containing byte offset off.
func (li *lineIndex) lineAt(off int) int {
	return 1 + sort.SearchInts(li.newlines, off)
}

// last returns the 1-based number of the final line.
func (li *lineIndex) last() int {
	return len(li.newlines) + 1
}
