// Package llmerr defines the structured error type shared by the llmx
// engine and its collaborators. Every failure carries a stable code so the
// CLI can map it to an exit status and the MCP server can render a wire
// error without leaking internal details.
package llmerr

import "fmt"

// Error is the structured error type for llmx.
type Error struct {
	// Code is the stable error code (see codes.go).
	Code string

	// Message is the human-readable error message.
	Message string

	// Details contains additional context as key-value pairs. Details never
	// include raw file contents.
	Details map[string]string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code, enabling errors.Is with sentinel values.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail and returns the error for chaining.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error from an existing error. Returns nil for a nil cause.
func Wrap(code string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: err.Error(), Cause: err}
}

// EmbeddingsUnavailable reports a semantic search request against an index
// without an embedding block.
func EmbeddingsUnavailable() *Error {
	return New(CodeEmbeddingsUnavailable, "index has no embeddings; retry without semantic search")
}

// DimensionMismatch reports an embedding dimension conflict.
func DimensionMismatch(expected, got int) *Error {
	return Newf(CodeDimensionMismatch, "dimension mismatch: expected %d, got %d", expected, got).
		WithDetail("expected", fmt.Sprintf("%d", expected)).
		WithDetail("got", fmt.Sprintf("%d", got))
}

// InvalidRef reports a chunk reference that does not resolve.
func InvalidRef(ref string) *Error {
	return Newf(CodeInvalidRef, "invalid chunk ref %q", ref).WithDetail("ref", ref)
}

// UnknownChunk reports a chunk id that does not resolve.
func UnknownChunk(id string) *Error {
	return Newf(CodeUnknownChunk, "unknown chunk id %q", id).WithDetail("id", id)
}

// CorruptIndex reports an IndexFile that failed invariant validation.
func CorruptIndex(reason string) *Error {
	return Newf(CodeCorruptIndex, "corrupt index: %s", reason).WithDetail("reason", reason)
}

// InvalidInput reports malformed caller input.
func InvalidInput(message string) *Error {
	return New(CodeInvalidInput, message)
}

// Internal reports an unexpected internal failure.
func Internal(message string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: message, Cause: cause}
}

// IsFatal reports whether the error aborts the current operation. Limit and
// decode conditions are recoverable and surface as warnings instead.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(*Error); ok {
		return fatalCodes[e.Code]
	}
	return true
}

// GetCode extracts the code from an Error, or empty for foreign errors.
func GetCode(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
