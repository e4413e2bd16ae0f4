package llmerr

// Error codes are stable identifiers surfaced to collaborators (CLI exit
// mapping, MCP wire errors). Messages may change; codes may not.
const (
	// Input limit warnings. Ingestion records these conditions on the
	// IndexFile as warnings; it never returns them as errors.
	CodeLimitFile   = "ERR_LIMIT_FILE"   // single file over max_file_bytes
	CodeLimitTotal  = "ERR_LIMIT_TOTAL"  // batch over max_total_bytes
	CodeLimitChunks = "ERR_LIMIT_CHUNKS" // file produced more than max_chunks_per_file

	// CodeDecode marks a file whose bytes could not be decoded as expected;
	// the file is ingested with best-effort text.
	CodeDecode = "ERR_DECODE"

	// Search-time failures. Fatal for the current call only.
	CodeEmbeddingsUnavailable = "ERR_EMBEDDINGS_UNAVAILABLE"
	CodeDimensionMismatch     = "ERR_DIMENSION_MISMATCH"
	CodeInvalidRef            = "ERR_INVALID_REF"
	CodeUnknownChunk          = "ERR_UNKNOWN_CHUNK"

	// CodeCorruptIndex marks an IndexFile that failed invariant validation.
	// The caller should discard the index.
	CodeCorruptIndex = "ERR_CORRUPT_INDEX"

	// CodeInvalidInput covers malformed caller input (bad paths, bad
	// options, malformed manifests).
	CodeInvalidInput = "ERR_INVALID_INPUT"

	// CodeInternal covers unexpected internal failures.
	CodeInternal = "ERR_INTERNAL"
)

// fatal codes abort the current operation; everything else is recoverable.
var fatalCodes = map[string]bool{
	CodeEmbeddingsUnavailable: true,
	CodeDimensionMismatch:     true,
	CodeInvalidRef:            true,
	CodeUnknownChunk:          true,
	CodeCorruptIndex:          true,
	CodeInvalidInput:          true,
	CodeInternal:              true,
}
