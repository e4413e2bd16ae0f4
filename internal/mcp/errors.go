package mcp

import (
	"errors"
	"fmt"

	"github.com/johnzfitch/llmx/internal/llmerr"
)

// JSON-RPC error codes used on the wire.
const (
	ErrCodeInvalidParams = -32602
	ErrCodeInternalError = -32603

	// ErrCodeSearchFailed covers typed engine failures surfaced to clients.
	ErrCodeSearchFailed = -32010
)

// WireError is the error shape returned to MCP clients. Internal details
// (paths, stack traces, file contents) never cross this boundary; only the
// stable code and a short message do.
type WireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *WireError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError renders an engine error for the wire.
func MapError(err error) *WireError {
	if err == nil {
		return nil
	}

	var le *llmerr.Error
	if errors.As(err, &le) {
		switch le.Code {
		case llmerr.CodeInvalidInput, llmerr.CodeInvalidRef, llmerr.CodeUnknownChunk:
			return &WireError{Code: ErrCodeInvalidParams, Message: le.Message}
		case llmerr.CodeEmbeddingsUnavailable:
			return &WireError{Code: ErrCodeSearchFailed, Message: "index has no embeddings; retry without semantic search"}
		case llmerr.CodeDimensionMismatch:
			return &WireError{Code: ErrCodeSearchFailed, Message: "query embedding dimension does not match the index"}
		case llmerr.CodeCorruptIndex:
			return &WireError{Code: ErrCodeInternalError, Message: "index is corrupt; re-index the project"}
		}
	}

	return &WireError{Code: ErrCodeInternalError, Message: "internal server error"}
}

// NewInvalidParamsError reports a malformed tool invocation.
func NewInvalidParamsError(msg string) *WireError {
	return &WireError{Code: ErrCodeInvalidParams, Message: msg}
}
