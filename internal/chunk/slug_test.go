package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		piece Piece
		want  string
	}{
		{
			name: "stem only",
			path: "docs/README.md",
			want: "readme",
		},
		{
			name:  "with heading",
			path:  "docs/guide.md",
			piece: Piece{HeadingPath: []string{"Intro", "Getting Started"}},
			want:  "guide-getting-started",
		},
		{
			name:  "with symbol",
			path:  "src/app.js",
			piece: Piece{Symbol: "handleRequest"},
			want:  "app-handlerequest",
		},
		{
			name:  "with address",
			path:  "package.json",
			piece: Piece{Address: "$.dependencies"},
			want:  "package-dependencies",
		},
		{
			name:  "heading wins over symbol",
			path:  "a.md",
			piece: Piece{HeadingPath: []string{"Usage"}, Symbol: "ignored"},
			want:  "a-usage",
		},
		{
			name:  "punctuation collapses to dashes",
			path:  "weird name!.txt",
			piece: Piece{},
			want:  "weird-name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.path, tt.piece))
		})
	}
}

func TestSlug_Truncated(t *testing.T) {
	s := Slug("a.md", Piece{HeadingPath: []string{"a very long heading title that exceeds the slug limit by far"}})
	assert.LessOrEqual(t, len([]rune(s)), SlugMaxLen)
	assert.NotEqual(t, "-", s[len(s)-1:])
}
