package chunk

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// jsParser holds the tree-sitter grammars for script chunking. Grammars are
// immutable and shared; a parser instance is created per parse because
// sitter.Parser is not safe for concurrent use.
type jsParser struct {
	js  *sitter.Language
	ts  *sitter.Language
	tsx *sitter.Language
}

func newJSParser() *jsParser {
	return &jsParser{
		js:  javascript.GetLanguage(),
		ts:  typescript.GetLanguage(),
		tsx: tsx.GetLanguage(),
	}
}

// Close releases parser resources. Grammars need no cleanup.
func (p *jsParser) Close() {}

// languageFor picks the grammar from the file extension.
func (p *jsParser) languageFor(path string) *sitter.Language {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tsx"):
		return p.tsx
	case strings.HasSuffix(lower, ".ts"), strings.HasSuffix(lower, ".mts"), strings.HasSuffix(lower, ".cts"):
		return p.ts
	default:
		return p.js
	}
}

// parse parses source with the grammar for path. Returns nil on failure.
func (p *jsParser) parse(path string, source []byte) *sitter.Tree {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.languageFor(path))

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return nil
	}
	return tree
}

// chunkJavaScript emits one piece per function, class, method, or top-level
// arrow-function assignment, with the declared name as the symbol. Top-level
// statements between declarations (imports, side effects) become unnamed
// pieces so the whole file stays searchable. Files the parser cannot make
// sense of fall back to text chunking.
func (c *Chunker) chunkJavaScript(path string, data []byte) []Piece {
	if len(data) == 0 {
		return nil
	}

	tree := c.js.parse(path, data)
	if tree == nil {
		return c.chunkText(data)
	}
	defer tree.Close()

	root := tree.RootNode()
	lines := splitLines(string(data))

	var pieces []Piece
	gapStart := -1 // 0-based line where the current gap began, -1 when none

	flushGap := func(endLine int) {
		if gapStart < 0 || gapStart > endLine || gapStart >= len(lines) {
			gapStart = -1
			return
		}
		if endLine >= len(lines) {
			endLine = len(lines) - 1
		}
		span := lines[gapStart : endLine+1]
		for _, seg := range capLines(span, gapStart, c.bounds.MaxChars) {
			pieces = append(pieces, Piece{
				Content:   seg.content,
				StartLine: seg.start + 1,
				EndLine:   seg.end + 1,
			})
		}
		gapStart = -1
	}

	count := int(root.NamedChildCount())
	sawSymbol := false
	for i := 0; i < count; i++ {
		stmt := root.NamedChild(i)
		declPieces := c.declarationPieces(stmt, data)
		if declPieces == nil {
			if gapStart < 0 {
				gapStart = int(stmt.StartPoint().Row)
			}
			continue
		}
		sawSymbol = true
		flushGap(int(stmt.StartPoint().Row) - 1)
		pieces = append(pieces, declPieces...)
	}
	flushGap(len(lines) - 1)

	if !sawSymbol {
		return c.chunkText(data)
	}
	return pieces
}

// declarationPieces renders a top-level statement that declares a symbol,
// or returns nil when the statement is not a declaration we name.
func (c *Chunker) declarationPieces(stmt *sitter.Node, data []byte) []Piece {
	node := stmt
	if stmt.Type() == "export_statement" {
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			node = decl
		} else {
			return nil
		}
	}

	switch node.Type() {
	case "function_declaration", "generator_function_declaration", "function_signature":
		name := nodeName(node, data)
		if name == "" {
			return nil
		}
		return c.symbolPieces(stmt, data, name)

	case "class_declaration", "abstract_class_declaration":
		return c.classPieces(stmt, node, data)

	case "lexical_declaration", "variable_declaration":
		name := arrowAssignmentName(node, data)
		if name == "" {
			return nil
		}
		return c.symbolPieces(stmt, data, name)

	default:
		return nil
	}
}

// classPieces emits a class as one piece when it fits the cap, otherwise a
// header piece plus one piece per method.
func (c *Chunker) classPieces(stmt, class *sitter.Node, data []byte) []Piece {
	className := nodeName(class, data)
	if className == "" {
		return nil
	}

	content := nodeContent(stmt, data)
	if runeLen(content) <= c.bounds.MaxChars {
		return []Piece{{
			Content:   content,
			StartLine: int(stmt.StartPoint().Row) + 1,
			EndLine:   int(stmt.EndPoint().Row) + 1,
			Symbol:    className,
		}}
	}

	body := class.ChildByFieldName("body")
	if body == nil {
		return c.symbolPieces(stmt, data, className)
	}

	var pieces []Piece

	// Header: class signature and fields up to the first method.
	headerEnd := int(body.StartPoint().Row)
	firstMethod := firstMethodNode(body)
	if firstMethod != nil {
		headerEnd = int(firstMethod.StartPoint().Row) - 1
	}
	headerStart := int(stmt.StartPoint().Row)
	if headerEnd >= headerStart {
		span := splitLines(string(data))
		if headerEnd < len(span) {
			for _, seg := range capLines(span[headerStart:headerEnd+1], headerStart, c.bounds.MaxChars) {
				pieces = append(pieces, Piece{
					Content:   seg.content,
					StartLine: seg.start + 1,
					EndLine:   seg.end + 1,
					Symbol:    className,
				})
			}
		}
	}

	n := int(body.NamedChildCount())
	for i := 0; i < n; i++ {
		member := body.NamedChild(i)
		if member.Type() != "method_definition" {
			continue
		}
		name := nodeName(member, data)
		if name == "" {
			continue
		}
		pieces = append(pieces, c.symbolPieces(member, data, className+"."+name)...)
	}
	return pieces
}

// symbolPieces renders one named node, splitting at the hard cap; all
// fragments keep the symbol.
func (c *Chunker) symbolPieces(node *sitter.Node, data []byte, symbol string) []Piece {
	content := nodeContent(node, data)
	startLine := int(node.StartPoint().Row) + 1
	endLine := int(node.EndPoint().Row) + 1

	if runeLen(content) <= c.bounds.MaxChars {
		return []Piece{{Content: content, StartLine: startLine, EndLine: endLine, Symbol: symbol}}
	}

	var pieces []Piece
	for _, seg := range capLines(splitLines(content), startLine-1, c.bounds.MaxChars) {
		pieces = append(pieces, Piece{
			Content:   seg.content,
			StartLine: seg.start + 1,
			EndLine:   seg.end + 1,
			Symbol:    symbol,
		})
	}
	return pieces
}

// firstMethodNode returns the first method_definition in a class body.
func firstMethodNode(body *sitter.Node) *sitter.Node {
	n := int(body.NamedChildCount())
	for i := 0; i < n; i++ {
		child := body.NamedChild(i)
		if child.Type() == "method_definition" {
			return child
		}
	}
	return nil
}

// arrowAssignmentName returns the declared name when a lexical or variable
// declaration binds an arrow function or function expression.
func arrowAssignmentName(decl *sitter.Node, data []byte) string {
	n := int(decl.NamedChildCount())
	for i := 0; i < n; i++ {
		d := decl.NamedChild(i)
		if d.Type() != "variable_declarator" {
			continue
		}
		value := d.ChildByFieldName("value")
		if value == nil {
			continue
		}
		switch value.Type() {
		case "arrow_function", "function", "function_expression", "generator_function":
			if name := d.ChildByFieldName("name"); name != nil {
				return nodeContent(name, data)
			}
		}
	}
	return ""
}

// nodeName returns the content of a node's name field.
func nodeName(node *sitter.Node, data []byte) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return nodeContent(name, data)
}

// nodeContent slices the source for a node.
func nodeContent(node *sitter.Node, data []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(data) || start >= end {
		return ""
	}
	return string(data[start:end])
}
