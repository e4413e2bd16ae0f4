package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/johnzfitch/llmx/internal/index"
	"github.com/johnzfitch/llmx/internal/llmerr"
)

// ChunkFile renders the chunks/<ref>.md artifact for one chunk: a YAML
// front matter block with fixed field order, a blank line, then the chunk
// content verbatim.
func ChunkFile(x *index.IndexFile, c *index.Chunk) (string, error) {
	fm, err := frontMatter(c)
	if err != nil {
		return "", llmerr.Internal("render front matter", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString(fm)
	b.WriteString("---\n\n")
	b.WriteString(c.Content)
	if !strings.HasSuffix(c.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

// ChunkFileCompact renders the compact variant: a single tab-separated
// header line followed by the content. Indices refer to the manifest's
// tables.
func ChunkFileCompact(x *index.IndexFile, c *index.Chunk) string {
	t := buildTables(x)
	var b strings.Builder
	fmt.Fprintf(&b, "@llmx\t%s\t%d\t%d\t%d\t%d\t%s\n",
		c.Ref, t.pathIdx[c.Path], t.kindIdx[c.Kind], c.StartLine, c.EndLine, c.Slug)
	b.WriteString(c.Content)
	if !strings.HasSuffix(c.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// ChunksDir renders every chunk file keyed by ref, in ref sequence order.
func ChunksDir(x *index.IndexFile) ([]RefFile, error) {
	chunks := chunksByRef(x)
	out := make([]RefFile, 0, len(chunks))
	for _, c := range chunks {
		body, err := ChunkFile(x, c)
		if err != nil {
			return nil, err
		}
		out = append(out, RefFile{Ref: c.Ref, Data: []byte(body)})
	}
	return out, nil
}

// RefFile is one rendered chunk artifact.
type RefFile struct {
	Ref  string
	Data []byte
}

// frontMatter encodes the fixed-order YAML block. Optional fields are
// emitted as null; lines and heading_path use flow style.
func frontMatter(c *index.Chunk) (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	addScalar := func(key, value string) {
		root.Content = append(root.Content,
			keyNode(key),
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
	}
	addInt := func(key string, value int) {
		root.Content = append(root.Content,
			keyNode(key),
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(value)})
	}
	addOpt := func(key, value string) {
		if value == "" {
			root.Content = append(root.Content, keyNode(key), nullNode())
			return
		}
		addScalar(key, value)
	}

	addScalar("ref", c.Ref)
	addScalar("id", c.ID)
	addScalar("slug", c.Slug)
	addScalar("path", c.Path)
	addScalar("kind", string(c.Kind))

	lines := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	lines.Content = append(lines.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(c.StartLine)},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(c.EndLine)})
	root.Content = append(root.Content, keyNode("lines"), lines)

	addInt("token_estimate", c.TokenEstimate)

	hp := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, h := range c.HeadingPath {
		hp.Content = append(hp.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: h})
	}
	root.Content = append(root.Content, keyNode("heading_path"), hp)

	addOpt("symbol", c.Symbol)
	addOpt("address", c.Address)
	addOpt("asset_path", c.AssetPath)

	out, err := yaml.Marshal(root)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// SortRefFiles orders rendered chunk files by ref sequence.
func SortRefFiles(files []RefFile) {
	sort.Slice(files, func(i, j int) bool {
		si, ei := index.ParseRef(files[i].Ref)
		sj, ej := index.ParseRef(files[j].Ref)
		if ei != nil || ej != nil {
			return files[i].Ref < files[j].Ref
		}
		return si < sj
	})
}
