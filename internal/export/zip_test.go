package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string][]byte)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = body
	}
	return out
}

func TestZip_Completeness(t *testing.T) {
	idx := sampleIndex(t)
	data, err := Zip(idx, VariantDeflate)
	require.NoError(t, err)

	entries := readZip(t, data)
	require.Contains(t, entries, "llm.md")
	require.Contains(t, entries, "manifest.llm.tsv")

	// Every ref in the manifest has a chunks/<ref>.md entry.
	doc, err := ParseManifest(string(entries["manifest.llm.tsv"]))
	require.NoError(t, err)
	for _, c := range doc.Chunks {
		assert.Contains(t, entries, "chunks/"+c.Ref+".md")
	}

	// Every chunk with an asset path has a matching images/ entry.
	for i := range idx.Chunks {
		if idx.Chunks[i].AssetPath != "" {
			assert.Contains(t, entries, idx.Chunks[i].AssetPath)
			assert.Equal(t, idx.Assets[idx.Chunks[i].AssetPath], entries[idx.Chunks[i].AssetPath])
		}
	}
}

func TestZip_CanonicalOrder(t *testing.T) {
	idx := sampleIndex(t)
	data, err := Zip(idx, VariantStore)
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(r.File), 3)

	assert.Equal(t, "llm.md", r.File[0].Name)
	assert.Equal(t, "manifest.llm.tsv", r.File[1].Name)

	sawImages := false
	for _, f := range r.File[2:] {
		if strings.HasPrefix(f.Name, "images/") {
			sawImages = true
			continue
		}
		assert.True(t, strings.HasPrefix(f.Name, "chunks/"), f.Name)
		assert.False(t, sawImages, "chunks must precede images")
	}
}

func TestZip_Deterministic(t *testing.T) {
	a, err := Zip(sampleIndex(t), VariantDeflate)
	require.NoError(t, err)
	b, err := Zip(sampleIndex(t), VariantDeflate)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestZip_FullIncludesIndexJSON(t *testing.T) {
	idx := sampleIndex(t)
	data, err := Zip(idx, VariantFull)
	require.NoError(t, err)

	entries := readZip(t, data)
	require.Contains(t, entries, "index.json")
	assert.Contains(t, string(entries["index.json"]), idx.IndexID)
}

func TestZip_StoreVariantUncompressed(t *testing.T) {
	idx := sampleIndex(t)
	data, err := Zip(idx, VariantStore)
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range r.File {
		assert.Equal(t, zip.Store, f.Method, f.Name)
	}
}
