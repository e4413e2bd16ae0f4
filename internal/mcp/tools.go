package mcp

// SearchInput defines the input schema for the search tool.
type SearchInput struct {
	Query         string `json:"query" jsonschema:"the search query to execute"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
	Semantic      bool   `json:"semantic,omitempty" jsonschema:"enable hybrid semantic search (requires an embedded index)"`
	Strategy      string `json:"strategy,omitempty" jsonschema:"hybrid fusion strategy: linear or rrf"`
	Kind          string `json:"kind,omitempty" jsonschema:"filter by chunk kind: markdown, json, javascript, html, text, image, unknown"`
	PathPrefix    string `json:"path_prefix,omitempty" jsonschema:"filter by path prefix"`
	HeadingPrefix string `json:"heading_prefix,omitempty" jsonschema:"filter by heading path prefix (segments joined with /)"`
	SymbolPrefix  string `json:"symbol_prefix,omitempty" jsonschema:"filter by symbol name prefix"`
	MaxTokens     *int   `json:"max_tokens,omitempty" jsonschema:"token budget for inline chunk content, default 16000; 0 returns refs only"`
}

// SearchOutput defines the output schema for the search tool.
type SearchOutput struct {
	Results      []SearchResultOutput `json:"results" jsonschema:"ranked search results"`
	TruncatedIDs []string             `json:"truncated_ids,omitempty" jsonschema:"chunk ids whose inline content was withheld by the token budget"`
	Strategy     string               `json:"strategy" jsonschema:"ranking strategy that produced this response"`
}

// SearchResultOutput is one hit in a search response.
type SearchResultOutput struct {
	Ref         string   `json:"ref" jsonschema:"stable chunk reference, use with get_chunk"`
	Path        string   `json:"path" jsonschema:"file path relative to the indexed root"`
	Lines       [2]int   `json:"lines" jsonschema:"1-based inclusive line range"`
	Score       float64  `json:"score" jsonschema:"relevance score"`
	Snippet     string   `json:"snippet" jsonschema:"first 200 characters, whitespace-normalized"`
	HeadingPath []string `json:"heading_path,omitempty" jsonschema:"ancestor headings of the chunk"`
	Content     string   `json:"content,omitempty" jsonschema:"inline chunk content, present while the token budget allows"`
}

// GetChunkInput defines the input schema for the get_chunk tool.
type GetChunkInput struct {
	Ref string `json:"ref" jsonschema:"chunk ref (c0001 style) or full chunk id"`
}

// GetChunkOutput defines the output schema for the get_chunk tool.
type GetChunkOutput struct {
	Ref         string   `json:"ref"`
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Path        string   `json:"path"`
	Kind        string   `json:"kind"`
	Lines       [2]int   `json:"lines"`
	HeadingPath []string `json:"heading_path,omitempty"`
	Symbol      string   `json:"symbol,omitempty"`
	Address     string   `json:"address,omitempty"`
	Content     string   `json:"content"`
}

// OutlineInput defines the input schema for the outline tool.
type OutlineInput struct {
	Path string `json:"path" jsonschema:"file path relative to the indexed root"`
}

// OutlineOutput defines the output schema for the outline tool.
type OutlineOutput struct {
	Path     string     `json:"path"`
	Headings [][]string `json:"headings" jsonschema:"ordered heading paths of the file"`
}

// SymbolsInput defines the input schema for the symbols tool.
type SymbolsInput struct {
	Path string `json:"path" jsonschema:"file path relative to the indexed root"`
}

// SymbolsOutput defines the output schema for the symbols tool.
type SymbolsOutput struct {
	Path    string   `json:"path"`
	Symbols []string `json:"symbols" jsonschema:"ordered symbols declared in the file"`
}
