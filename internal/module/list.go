package module

import (
	"fmt"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// List is the container shape holding an ordered sequence of sub-modules of
// one type. Elements are addressed by the positional key "mod-<index>" in
// state trees. Traversal is always in sequence order, which keeps any
// optimizer bookkeeping keyed by traversal order reproducible.
type List[B tensor.Backend, M Module[B]] struct {
	values []M
}

// NewList creates a container owning the given sequence.
func NewList[B tensor.Backend, M Module[B]](values ...M) *List[B, M] {
	return &List[B, M]{values: values}
}

// listKey returns the positional state key for index i.
func listKey(i int) string {
	return fmt.Sprintf("mod-%d", i)
}

// Len returns the number of elements.
func (l *List[B, M]) Len() int {
	return len(l.values)
}

// At returns the element at index i.
func (l *List[B, M]) At(i int) M {
	return l.values[i]
}

// Name returns the container's diagnostic name.
func (l *List[B, M]) Name() string {
	return "List"
}

// NumParams returns the sum over all elements.
func (l *List[B, M]) NumParams() int {
	total := 0
	for _, m := range l.values {
		total += m.NumParams()
	}
	return total
}

// UpdateParams applies the optimizer to every element in sequence order.
func (l *List[B, M]) UpdateParams(grads autodiff.Gradients, optim Optimizer[B]) {
	for _, m := range l.values {
		m.UpdateParams(grads, optim)
	}
}

// Devices concatenates each element's device list, duplicates retained.
func (l *List[B, M]) Devices() []tensor.Device {
	var devices []tensor.Device
	for _, m := range l.values {
		devices = append(devices, m.Devices()...)
	}
	return devices
}

// ToDevice moves every element to device.
func (l *List[B, M]) ToDevice(device tensor.Device) {
	for _, m := range l.values {
		m.ToDevice(device)
	}
}

// State returns a named node with one entry per element under its
// positional key.
func (l *List[B, M]) State() *State {
	state := NamedState()
	for i, m := range l.values {
		state.Register(listKey(i), m.State())
	}
	return state
}

// Load looks up each element's positional key and recurses. A missing key,
// or a data leaf where a named node is expected, leaves the affected
// elements unchanged.
func (l *List[B, M]) Load(state *State) {
	if state == nil || state.IsData() {
		return
	}
	for i, m := range l.values {
		if child, ok := state.Get(listKey(i)); ok {
			m.Load(child)
		}
	}
}

// InnerList converts every element with conv, preserving order and length.
// conv is the element type's own inference-mode conversion.
func InnerList[B tensor.Backend, M Module[*autodiff.Backend[B]], I Module[B]](
	l *List[*autodiff.Backend[B], M],
	conv func(M) I,
) *List[B, I] {
	values := make([]I, len(l.values))
	for i, m := range l.values {
		values[i] = conv(m)
	}
	return NewList[B](values...)
}
