package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"sort"
	"time"

	"github.com/johnzfitch/llmx/internal/index"
	"github.com/johnzfitch/llmx/internal/llmerr"
)

// Variant selects the ZIP packaging mode.
type Variant string

const (
	// VariantStore packages entries uncompressed.
	VariantStore Variant = "store"
	// VariantDeflate packages entries deflate-compressed.
	VariantDeflate Variant = "deflate"
	// VariantFull is deflate plus the complete index as compact JSON.
	VariantFull Variant = "full"
)

// zipEpoch is the fixed timestamp stamped on every entry so archives are
// byte-identical across runs.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Zip packages the artifact set in canonical order: pointer, manifest,
// chunks/ by ref, images/ by path, and (full variant) index.json.
func Zip(x *index.IndexFile, variant Variant) ([]byte, error) {
	method := zip.Deflate
	if variant == VariantStore {
		method = zip.Store
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	add := func(name string, data []byte) error {
		fw, err := w.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   method,
			Modified: zipEpoch,
		})
		if err != nil {
			return err
		}
		_, err = fw.Write(data)
		return err
	}

	if err := add("llm.md", []byte(Pointer(x))); err != nil {
		return nil, llmerr.Internal("zip pointer", err)
	}
	if err := add("manifest.llm.tsv", []byte(Manifest(x))); err != nil {
		return nil, llmerr.Internal("zip manifest", err)
	}

	files, err := ChunksDir(x)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := add("chunks/"+f.Ref+".md", f.Data); err != nil {
			return nil, llmerr.Internal("zip chunk", err)
		}
	}

	assetPaths := make([]string, 0, len(x.Assets))
	for p := range x.Assets {
		assetPaths = append(assetPaths, p)
	}
	sort.Strings(assetPaths)
	for _, p := range assetPaths {
		if err := add(p, x.Assets[p]); err != nil {
			return nil, llmerr.Internal("zip asset", err)
		}
	}

	if variant == VariantFull {
		compact, err := json.Marshal(x)
		if err != nil {
			return nil, llmerr.Internal("marshal index", err)
		}
		if err := add("index.json", compact); err != nil {
			return nil, llmerr.Internal("zip index", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, llmerr.Internal("close zip", err)
	}
	return buf.Bytes(), nil
}
