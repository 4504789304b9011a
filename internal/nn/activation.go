package nn

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/module"
	"github.com/ember-ml/ember/internal/tensor"
)

// ReLU is the rectified linear unit as a parameter-free layer. It carries
// an empty field list, so it contributes nothing to parameter counts or
// device lists and serializes to an empty named node.
type ReLU[B tensor.Backend] struct {
	def *module.Def[B]
}

// NewReLU creates a ReLU layer.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{def: module.Define[B]("ReLU")}
}

// Forward computes max(x, 0) element-wise.
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.Relu()
}

// Name returns the layer's diagnostic name.
func (r *ReLU[B]) Name() string { return r.def.Name() }

// NumParams returns 0; ReLU has no parameters.
func (r *ReLU[B]) NumParams() int { return r.def.NumParams() }

// UpdateParams is a no-op; ReLU has no parameters.
func (r *ReLU[B]) UpdateParams(grads autodiff.Gradients, optim module.Optimizer[B]) {
	r.def.UpdateParams(grads, optim)
}

// Devices returns an empty sequence.
func (r *ReLU[B]) Devices() []tensor.Device { return r.def.Devices() }

// ToDevice is a no-op.
func (r *ReLU[B]) ToDevice(device tensor.Device) { r.def.ToDevice(device) }

// State returns an empty named node.
func (r *ReLU[B]) State() *module.State { return r.def.State() }

// Load is a no-op.
func (r *ReLU[B]) Load(state *module.State) { r.def.Load(state) }

// InnerReLU returns a ReLU layer bound to the base backend.
func InnerReLU[B tensor.Backend](_ *ReLU[*autodiff.Backend[B]]) *ReLU[B] {
	return NewReLU[B]()
}
