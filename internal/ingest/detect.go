package ingest

import (
	"bytes"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/johnzfitch/llmx/internal/chunk"
)

// extKinds maps known extensions to kinds. Extension wins over content.
var extKinds = map[string]chunk.Kind{
	".md":       chunk.KindMarkdown,
	".markdown": chunk.KindMarkdown,
	".mdx":      chunk.KindMarkdown,
	".json":     chunk.KindJSON,
	".js":       chunk.KindJavaScript,
	".jsx":      chunk.KindJavaScript,
	".mjs":      chunk.KindJavaScript,
	".cjs":      chunk.KindJavaScript,
	".ts":       chunk.KindJavaScript,
	".tsx":      chunk.KindJavaScript,
	".mts":      chunk.KindJavaScript,
	".cts":      chunk.KindJavaScript,
	".html":     chunk.KindHTML,
	".htm":      chunk.KindHTML,
	".txt":      chunk.KindText,
	".text":     chunk.KindText,
	".log":      chunk.KindText,
	".png":      chunk.KindImage,
	".jpg":      chunk.KindImage,
	".jpeg":     chunk.KindImage,
	".gif":      chunk.KindImage,
	".webp":     chunk.KindImage,
	".bmp":      chunk.KindImage,
	".ico":      chunk.KindImage,
	".svg":      chunk.KindImage,
}

// imageMagics are the signatures checked when the extension is unknown.
var imageMagics = [][]byte{
	{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'},
	{0xff, 0xd8, 0xff},
	[]byte("GIF87a"),
	[]byte("GIF89a"),
}

// DetectKind classifies a file: extension first, then image magic bytes,
// then a UTF-8 sniff for text, falling back to unknown.
func DetectKind(p string, data []byte) chunk.Kind {
	if kind, ok := extKinds[strings.ToLower(path.Ext(p))]; ok {
		return kind
	}

	for _, magic := range imageMagics {
		if bytes.HasPrefix(data, magic) {
			return chunk.KindImage
		}
	}
	// RIFF....WEBP
	if len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return chunk.KindImage
	}

	if looksLikeText(data) {
		return chunk.KindText
	}
	return chunk.KindUnknown
}

// looksLikeText sniffs the leading bytes for valid UTF-8 without NUL bytes.
func looksLikeText(data []byte) bool {
	sample := data
	if len(sample) > 8192 {
		sample = sample[:8192]
		// Avoid judging a rune cut at the sample edge.
		for len(sample) > 0 && !utf8.Valid(sample) {
			sample = sample[:len(sample)-1]
			if len(sample) < 8188 {
				break
			}
		}
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}
	return utf8.Valid(sample)
}

// NormalizePath normalizes a relative path to forward slashes without dot
// segments. It rejects absolute paths and paths escaping the root.
func NormalizePath(p string) (string, bool) {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	if p == "" || p == "." || p == ".." ||
		strings.HasPrefix(p, "/") || strings.HasPrefix(p, "../") {
		return "", false
	}
	return p, true
}
