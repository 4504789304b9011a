package module

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// State is the persisted form of a parameter tree. A node is either a data
// leaf holding serialized tensor contents, or a named node mapping unique
// string keys to child trees. Named nodes remember insertion order so that
// serialization output is deterministic; lookup is by key.
//
// An empty named node is meaningful: optional parameters use it as the
// explicit "no parameter here" sentinel, distinguishable from a present
// leaf.
type State struct {
	data     *tensor.Data
	children map[string]*State
	order    []string
}

// DataState creates a leaf node holding d.
func DataState(d tensor.Data) *State {
	return &State{data: &d}
}

// NamedState creates an empty named node.
func NamedState() *State {
	return &State{children: make(map[string]*State)}
}

// IsData reports whether the node is a data leaf.
func (s *State) IsData() bool {
	return s.data != nil
}

// Data returns the leaf payload. The second result is false for named nodes.
func (s *State) Data() (tensor.Data, bool) {
	if s.data == nil {
		return tensor.Data{}, false
	}
	return *s.data, true
}

// Register inserts a child tree under key.
// Panics on a data leaf or a duplicate key; keys within a node are unique.
func (s *State) Register(key string, child *State) {
	if s.IsData() {
		panic("state: cannot register a child on a data leaf")
	}
	if _, ok := s.children[key]; ok {
		panic(fmt.Sprintf("state: duplicate key %q", key))
	}
	s.children[key] = child
	s.order = append(s.order, key)
}

// Get returns the child registered under key, if any.
func (s *State) Get(key string) (*State, bool) {
	child, ok := s.children[key]
	return child, ok
}

// Keys returns the node's keys in insertion order.
// Returns nil for data leaves.
func (s *State) Keys() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of children of a named node, 0 for data leaves.
func (s *State) Len() int {
	return len(s.children)
}

// Equal reports whether two trees have the same shape, key sets and
// bit-identical leaf contents. Key order is ignored.
func (s *State) Equal(other *State) bool {
	if s.IsData() != other.IsData() {
		return false
	}
	if s.IsData() {
		return s.data.Equal(*other.data)
	}
	if len(s.children) != len(other.children) {
		return false
	}
	for key, child := range s.children {
		otherChild, ok := other.children[key]
		if !ok || !child.Equal(otherChild) {
			return false
		}
	}
	return true
}

// String returns a compact diagnostic rendering of the tree.
func (s *State) String() string {
	if s.IsData() {
		return fmt.Sprintf("Data[%s]%v", s.data.DType, s.data.Shape)
	}
	return fmt.Sprintf("Named%v", s.order)
}
