package module

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// Nested is the container shape holding a single sub-module. Every
// operation forwards to the identically named operation on the held value;
// this is the recursion step that lets structures nest arbitrarily deep.
type Nested[B tensor.Backend, M Module[B]] struct {
	value M
}

// NewNested creates a container forwarding to m.
func NewNested[B tensor.Backend, M Module[B]](m M) *Nested[B, M] {
	return &Nested[B, M]{value: m}
}

// Value returns the held sub-module.
func (n *Nested[B, M]) Value() M {
	return n.value
}

// Name forwards to the held sub-module.
func (n *Nested[B, M]) Name() string {
	return n.value.Name()
}

// NumParams forwards to the held sub-module.
func (n *Nested[B, M]) NumParams() int {
	return n.value.NumParams()
}

// UpdateParams forwards to the held sub-module.
func (n *Nested[B, M]) UpdateParams(grads autodiff.Gradients, optim Optimizer[B]) {
	n.value.UpdateParams(grads, optim)
}

// Devices forwards to the held sub-module.
func (n *Nested[B, M]) Devices() []tensor.Device {
	return n.value.Devices()
}

// ToDevice forwards to the held sub-module.
func (n *Nested[B, M]) ToDevice(device tensor.Device) {
	n.value.ToDevice(device)
}

// State forwards to the held sub-module.
func (n *Nested[B, M]) State() *State {
	return n.value.State()
}

// Load forwards to the held sub-module.
func (n *Nested[B, M]) Load(state *State) {
	n.value.Load(state)
}

// InnerNested converts the held sub-module with conv and wraps the result.
// conv is the held module type's own inference-mode conversion.
func InnerNested[B tensor.Backend, M Module[*autodiff.Backend[B]], I Module[B]](
	n *Nested[*autodiff.Backend[B], M],
	conv func(M) I,
) *Nested[B, I] {
	return NewNested[B](conv(n.value))
}
