package export

import (
	"strconv"
	"strings"

	"github.com/johnzfitch/llmx/internal/llmerr"
)

// ManifestDoc is the parsed form of manifest.llm.tsv. It reconstructs the
// chunk catalog exactly: refs, paths, kinds, line ranges, and labels.
type ManifestDoc struct {
	SchemaVersion int
	IndexID       string

	Dirs   []string
	Paths  []ManifestPath
	Kinds  []string
	Files  []ManifestFile
	Chunks []ManifestChunk
}

// ManifestPath is one P row.
type ManifestPath struct {
	DirIndex int
	Base     string
}

// ManifestFile is one F row.
type ManifestFile struct {
	PathIndex  int
	KindIndex  int
	ChunkCount int
	TokenTotal int
	EndLineMax int
	Label      string
}

// ManifestChunk is one C row.
type ManifestChunk struct {
	Ref       string
	PathIndex int
	KindIndex int
	StartLine int
	EndLine   int
	Tokens    int
	Label     string
}

// FullPath resolves a P row against the dir table.
func (d *ManifestDoc) FullPath(pathIndex int) string {
	if pathIndex < 0 || pathIndex >= len(d.Paths) {
		return ""
	}
	p := d.Paths[pathIndex]
	if p.DirIndex < 0 || p.DirIndex >= len(d.Dirs) {
		return p.Base
	}
	return d.Dirs[p.DirIndex] + p.Base
}

// ParseManifest parses the bit-exact manifest format back into a document.
func ParseManifest(s string) (*ManifestDoc, error) {
	lines := strings.Split(s, "\n")
	if len(lines) == 0 {
		return nil, llmerr.InvalidInput("empty manifest")
	}

	header := strings.Split(lines[0], "\t")
	if len(header) != 3 || header[0] != ManifestHeader {
		return nil, llmerr.InvalidInput("bad manifest header")
	}
	schema, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, llmerr.InvalidInput("bad manifest schema version")
	}

	doc := &ManifestDoc{SchemaVersion: schema, IndexID: header[2]}

	for n, line := range lines[1:] {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if err := doc.addRow(fields); err != nil {
			return nil, llmerr.Newf(llmerr.CodeInvalidInput, "manifest row %d: %s", n+2, err.Error())
		}
	}
	return doc, nil
}

// addRow dispatches one parsed row by its tag.
func (d *ManifestDoc) addRow(fields []string) error {
	switch fields[0] {
	case "D":
		if len(fields) != 3 {
			return errFieldCount("D", len(fields))
		}
		// The index is positional; rows arrive in index order.
		d.Dirs = append(d.Dirs, fields[2])

	case "P":
		if len(fields) != 4 {
			return errFieldCount("P", len(fields))
		}
		dirIdx, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		d.Paths = append(d.Paths, ManifestPath{DirIndex: dirIdx, Base: fields[3]})

	case "K":
		if len(fields) != 3 {
			return errFieldCount("K", len(fields))
		}
		d.Kinds = append(d.Kinds, fields[2])

	case "F":
		if len(fields) != 7 {
			return errFieldCount("F", len(fields))
		}
		nums, err := atois(fields[1:6])
		if err != nil {
			return err
		}
		d.Files = append(d.Files, ManifestFile{
			PathIndex:  nums[0],
			KindIndex:  nums[1],
			ChunkCount: nums[2],
			TokenTotal: nums[3],
			EndLineMax: nums[4],
			Label:      fields[6],
		})

	case "C":
		if len(fields) != 8 {
			return errFieldCount("C", len(fields))
		}
		nums, err := atois(fields[2:7])
		if err != nil {
			return err
		}
		d.Chunks = append(d.Chunks, ManifestChunk{
			Ref:       fields[1],
			PathIndex: nums[0],
			KindIndex: nums[1],
			StartLine: nums[2],
			EndLine:   nums[3],
			Tokens:    nums[4],
			Label:     fields[7],
		})

	default:
		return llmerr.Newf(llmerr.CodeInvalidInput, "unknown row tag %q", fields[0])
	}
	return nil
}

func errFieldCount(tag string, got int) error {
	return llmerr.Newf(llmerr.CodeInvalidInput, "%s row has %d fields", tag, got)
}

func atois(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
