// Package embed supplies embedding vectors to the engine. The engine never
// loads a neural model itself; it consumes unit vectors produced here or by
// an external collaborator. The static embedder keeps semantic search fully
// offline and deterministic.
package embed

// Embedder produces one unit-norm vector per input text.
type Embedder interface {
	// Embed returns the vector for a single text.
	Embed(text string) ([]float32, error)

	// EmbedBatch returns one vector per text, in input order.
	EmbedBatch(texts []string) ([][]float32, error)

	// Dimensions is the fixed vector dimension.
	Dimensions() int

	// ModelID identifies the producing model; it is stamped onto the
	// IndexFile as the compatibility token.
	ModelID() string
}
