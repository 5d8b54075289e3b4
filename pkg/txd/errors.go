package txd

import "github.com/pkg/errors"

// Fatal conditions. Every error returned by this package aborts the file
// being parsed; recoverable conditions are only logged.
var (
	ErrEOFNotFound      = errors.New("EOF sentinel pattern not found")
	ErrEOFAmbiguous     = errors.New("EOF sentinel found more than once, file is ambiguous or corrupt")
	ErrNoSegments       = errors.New("no processable segments")
	ErrMetadataNotFound = errors.New("metadata marker not found after texture name")
	ErrMetadataRange    = errors.New("metadata block out of range")
	ErrFormatMismatch   = errors.New("metadata format code misaligned")
	ErrDimensions       = errors.New("texture has exactly one zero dimension")
	ErrInvalidSize      = errors.New("texture total size is zero")
	ErrPayloadTruncated = errors.New("pixel payload exceeds segment")
)
