package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple words",
			input: "hello world",
			want:  []string{"hello", "world"},
		},
		{
			name:  "lowercasing",
			input: "Hello WORLD",
			want:  []string{"hello", "world"},
		},
		{
			name:  "stopwords filtered",
			input: "the quick fox and the dog",
			want:  []string{"quick", "fox", "dog"},
		},
		{
			name:  "short terms dropped",
			input: "a b go x1",
			want:  []string{"go", "x1"},
		},
		{
			name:  "digits kept",
			input: "http2 404 error",
			want:  []string{"http2", "404", "error"},
		},
		{
			name:  "punctuation splits",
			input: "foo.bar(baz)",
			want:  []string{"foo", "bar", "baz"},
		},
		{
			name:  "underscore splits",
			input: "snake_case_name",
			want:  []string{"snake", "case", "name"},
		},
		{
			name:  "non-ascii letters pass through lowered",
			input: "Über Änderung",
			want:  []string{"über", "änderung"},
		},
		{
			name:  "empty",
			input: "",
			want:  []string{},
		},
		{
			name:  "only stopwords",
			input: "the and of",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenizeUnique(t *testing.T) {
	assert.Equal(t, []string{"foo", "bar"}, TokenizeUnique("foo bar foo FOO bar"))
}

func TestCountTerms(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	assert.Equal(t, len(Tokenize(text)), CountTerms(text))
	assert.Equal(t, 0, CountTerms(""))
	assert.Equal(t, 0, CountTerms("a the of"))
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("the"))
	assert.True(t, IsStopWord("their"))
	assert.False(t, IsStopWord("thesis"))
}
