// Package serialization implements the .ember checkpoint format: a portable
// file encoding of a parameter State tree.
//
// The tree itself is the persistence contract of the runtime; this package
// is the outer layer that chooses an encoding. A file is:
//
//	magic "EMBR" | format version (uint32 LE) | header length (uint64 LE) |
//	JSON header | zero padding | data section
//
// Leaves are addressed by dotted paths ("layers.mod-0.weight"); their bytes
// live in the data section at 64-byte-aligned offsets. Empty named nodes,
// the absent-optional sentinel, are listed separately so the key set and
// nesting round-trip exactly. A SHA-256 checksum of the data section is
// stored in the header and verified on read.
package serialization

import (
	"time"

	"github.com/ember-ml/ember/internal/tensor"
)

// Format constants.
const (
	MagicBytes    = "EMBR"
	FormatVersion = 1
	DataAlignment = 64 // Leaf data is aligned for mmap-friendly access
)

// PathSeparator joins state keys into leaf paths. Keys must not contain it.
const PathSeparator = "."

// Header is the JSON header of a .ember file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	EmberVersion  string            `json:"ember_version"`
	ModelName     string            `json:"model_name"`
	CreatedAt     time.Time         `json:"created_at"`
	Checksum      string            `json:"checksum"` // hex SHA-256 of the data section
	Entries       []EntryMeta       `json:"entries"`
	EmptyNodes    []string          `json:"empty_nodes,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// EntryMeta describes one leaf in the data section. An empty path means the
// tree's root is itself a leaf.
type EntryMeta struct {
	Path   string `json:"path"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset int64  `json:"offset"` // Bytes from the start of the data section
	Size   int64  `json:"size"`
}

// Data type string constants.
const (
	DTypeFloat32 = "float32"
	DTypeFloat64 = "float64"
	DTypeInt32   = "int32"
	DTypeInt64   = "int64"
	DTypeUint8   = "uint8"
)

// dtypeToString converts tensor.DataType to its string representation.
func dtypeToString(dt tensor.DataType) string {
	switch dt {
	case tensor.Float32:
		return DTypeFloat32
	case tensor.Float64:
		return DTypeFloat64
	case tensor.Int32:
		return DTypeInt32
	case tensor.Int64:
		return DTypeInt64
	case tensor.Uint8:
		return DTypeUint8
	default:
		return "unknown"
	}
}

// stringToDtype converts a string representation to tensor.DataType.
func stringToDtype(s string) (tensor.DataType, bool) {
	switch s {
	case DTypeFloat32:
		return tensor.Float32, true
	case DTypeFloat64:
		return tensor.Float64, true
	case DTypeInt32:
		return tensor.Int32, true
	case DTypeInt64:
		return tensor.Int64, true
	case DTypeUint8:
		return tensor.Uint8, true
	default:
		return 0, false
	}
}

// align rounds n up to the next multiple of DataAlignment.
func align(n int64) int64 {
	rem := n % DataAlignment
	if rem == 0 {
		return n
	}
	return n + DataAlignment - rem
}
