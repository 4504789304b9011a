package serialization

import "errors"

// Sentinel errors the reader and writer wrap.
var (
	// ErrBadMagic means the file does not start with the EMBR magic bytes.
	ErrBadMagic = errors.New("serialization: not an ember file")

	// ErrUnsupportedVersion means the file's format version is newer than
	// this library understands.
	ErrUnsupportedVersion = errors.New("serialization: unsupported format version")

	// ErrChecksumMismatch means the data section does not match the
	// checksum stored in the header.
	ErrChecksumMismatch = errors.New("serialization: checksum mismatch")

	// ErrCorrupted means the file's structure is internally inconsistent.
	ErrCorrupted = errors.New("serialization: corrupted file")

	// ErrBadKey means a state key cannot be encoded as a path segment.
	ErrBadKey = errors.New("serialization: state key contains path separator")
)
