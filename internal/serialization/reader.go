package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ember-ml/ember/internal/module"
	"github.com/ember-ml/ember/internal/tensor"
)

// Read decodes a .ember file into its State tree and header.
//
// The data-section checksum is always verified; a mismatch returns
// ErrChecksumMismatch.
func Read(path string) (*module.State, Header, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("serialization: reading %s: %w", path, err)
	}

	if len(buf) < 16 || string(buf[:4]) != MagicBytes {
		return nil, Header{}, ErrBadMagic
	}
	if version := binary.LittleEndian.Uint32(buf[4:]); version == 0 || version > FormatVersion {
		return nil, Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	// Validate the length before adding the prefix so a huge value cannot
	// wrap around to a small or negative offset.
	headerLen := binary.LittleEndian.Uint64(buf[8:])
	if headerLen > uint64(len(buf)-16) {
		return nil, Header{}, fmt.Errorf("%w: header extends past end of file", ErrCorrupted)
	}
	prefixLen := int64(16 + headerLen)

	var header Header
	if err := json.Unmarshal(buf[16:prefixLen], &header); err != nil {
		return nil, Header{}, fmt.Errorf("%w: decoding header: %v", ErrCorrupted, err)
	}

	// The data section begins on the next 64-byte boundary; a file cut off
	// inside that padding is corrupt, not merely empty.
	if align(prefixLen) > int64(len(buf)) {
		return nil, Header{}, fmt.Errorf("%w: data section starts past end of file", ErrCorrupted)
	}
	data := buf[align(prefixLen):]
	sum := sha256.Sum256(data)
	if header.Checksum != hex.EncodeToString(sum[:]) {
		return nil, Header{}, ErrChecksumMismatch
	}

	state, err := rebuild(header, data)
	if err != nil {
		return nil, Header{}, err
	}
	return state, header, nil
}

// rebuild reconstructs the State tree from header metadata and the data
// section.
func rebuild(header Header, data []byte) (*module.State, error) {
	// A root-level leaf is a whole-tree special case.
	if len(header.Entries) == 1 && header.Entries[0].Path == "" {
		d, err := entryData(header.Entries[0], data)
		if err != nil {
			return nil, err
		}
		return module.DataState(d), nil
	}

	root := module.NamedState()
	for _, entry := range header.Entries {
		if entry.Path == "" {
			return nil, fmt.Errorf("%w: root leaf mixed with named entries", ErrCorrupted)
		}
		d, err := entryData(entry, data)
		if err != nil {
			return nil, err
		}
		if err := insert(root, entry.Path, module.DataState(d)); err != nil {
			return nil, err
		}
	}
	for _, path := range header.EmptyNodes {
		if path == "" {
			continue // an entirely empty tree is just the empty root
		}
		if err := insert(root, path, module.NamedState()); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// entryData slices and copies one leaf's bytes out of the data section.
func entryData(entry EntryMeta, data []byte) (tensor.Data, error) {
	dtype, ok := stringToDtype(entry.DType)
	if !ok {
		return tensor.Data{}, fmt.Errorf("%w: unknown dtype %q for %q", ErrCorrupted, entry.DType, entry.Path)
	}
	end := entry.Offset + entry.Size
	if entry.Offset < 0 || end > int64(len(data)) {
		return tensor.Data{}, fmt.Errorf("%w: entry %q out of bounds", ErrCorrupted, entry.Path)
	}

	bytes := make([]byte, entry.Size)
	copy(bytes, data[entry.Offset:end])
	return tensor.Data{DType: dtype, Shape: tensor.Shape(entry.Shape), Bytes: bytes}, nil
}

// insert places node at the dotted path below root, creating intermediate
// named nodes as needed.
func insert(root *module.State, path string, node *module.State) error {
	keys := strings.Split(path, PathSeparator)
	current := root
	for _, key := range keys[:len(keys)-1] {
		child, ok := current.Get(key)
		if !ok {
			child = module.NamedState()
			current.Register(key, child)
		}
		if child.IsData() {
			return fmt.Errorf("%w: path %q descends through a leaf", ErrCorrupted, path)
		}
		current = child
	}

	last := keys[len(keys)-1]
	if _, ok := current.Get(last); ok {
		return fmt.Errorf("%w: duplicate path %q", ErrCorrupted, path)
	}
	current.Register(last, node)
	return nil
}
