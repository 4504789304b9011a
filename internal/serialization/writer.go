package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ember-ml/ember/internal/module"
	"github.com/ember-ml/ember/internal/tensor"
)

// emberVersion is recorded in every written header.
const emberVersion = "0.3.0"

// flatEntry pairs a leaf path with its payload during flattening.
type flatEntry struct {
	path string
	data tensor.Data
}

// Write encodes a State tree into a .ember file at path.
//
// Leaves are written in the tree's deterministic key order, so writing the
// same tree twice produces identical files (modulo the creation timestamp).
func Write(path string, state *module.State, modelName string, metadata map[string]string) error {
	var entries []flatEntry
	var empty []string
	if err := flatten(state, "", &entries, &empty); err != nil {
		return err
	}

	// Lay out the data section with aligned offsets.
	metas := make([]EntryMeta, len(entries))
	var offset int64
	for i, e := range entries {
		offset = align(offset)
		metas[i] = EntryMeta{
			Path:   e.path,
			DType:  dtypeToString(e.data.DType),
			Shape:  e.data.Shape,
			Offset: offset,
			Size:   int64(len(e.data.Bytes)),
		}
		offset += int64(len(e.data.Bytes))
	}

	data := make([]byte, offset)
	for i, e := range entries {
		copy(data[metas[i].Offset:], e.data.Bytes)
	}

	sum := sha256.Sum256(data)
	header := Header{
		FormatVersion: FormatVersion,
		EmberVersion:  emberVersion,
		ModelName:     modelName,
		CreatedAt:     time.Now().UTC(),
		Checksum:      hex.EncodeToString(sum[:]),
		Entries:       metas,
		EmptyNodes:    empty,
		Metadata:      metadata,
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("serialization: encoding header: %w", err)
	}

	// magic + version + header length + header, padded so the data
	// section starts at an aligned offset.
	prefixLen := int64(len(MagicBytes) + 4 + 8 + len(headerJSON))
	buf := make([]byte, align(prefixLen)+offset)
	copy(buf, MagicBytes)
	binary.LittleEndian.PutUint32(buf[4:], FormatVersion)
	binary.LittleEndian.PutUint64(buf[8:], uint64(len(headerJSON)))
	copy(buf[16:], headerJSON)
	copy(buf[align(prefixLen):], data)

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("serialization: writing %s: %w", path, err)
	}
	return nil
}

// flatten walks the tree in key order collecting leaves and empty named
// nodes under dotted paths.
func flatten(state *module.State, prefix string, entries *[]flatEntry, empty *[]string) error {
	if data, ok := state.Data(); ok {
		*entries = append(*entries, flatEntry{path: prefix, data: data})
		return nil
	}

	keys := state.Keys()
	if len(keys) == 0 {
		*empty = append(*empty, prefix)
		return nil
	}

	for _, key := range keys {
		if strings.Contains(key, PathSeparator) {
			return fmt.Errorf("%w: %q", ErrBadKey, key)
		}
		childPrefix := key
		if prefix != "" {
			childPrefix = prefix + PathSeparator + key
		}
		child, _ := state.Get(key)
		if err := flatten(child, childPrefix, entries, empty); err != nil {
			return err
		}
	}
	return nil
}
