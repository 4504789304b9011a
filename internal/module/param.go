package module

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// Verify that the leaf shape satisfies the Module contract.
var _ Module[*tensor.MockBackend] = (*Param[*tensor.MockBackend])(nil)

// Param is the leaf container shape: it owns exactly one parameter tensor.
//
// The held tensor is readable through Value; all mutation goes through the
// Module operations so that parameter count and state shape stay consistent
// with the held value.
type Param[B tensor.Backend] struct {
	value *tensor.Tensor[float32, B]
}

// NewParam creates a leaf container owning t.
func NewParam[B tensor.Backend](t *tensor.Tensor[float32, B]) *Param[B] {
	if t == nil {
		panic("module: Param requires a tensor; use OptionalParam for absence")
	}
	return &Param[B]{value: t}
}

// Value returns the held tensor for reading.
func (p *Param[B]) Value() *tensor.Tensor[float32, B] {
	return p.value
}

// Name returns the container's diagnostic name.
func (p *Param[B]) Name() string {
	return "Param"
}

// NumParams returns the product of the held tensor's shape dimensions.
func (p *Param[B]) NumParams() int {
	return p.value.NumElements()
}

// UpdateParams delegates the held tensor to the optimizer's update rule.
func (p *Param[B]) UpdateParams(grads autodiff.Gradients, optim Optimizer[B]) {
	optim.Update(p.value, grads)
}

// Devices returns the held tensor's device as a singleton sequence.
func (p *Param[B]) Devices() []tensor.Device {
	return []tensor.Device{p.value.Device()}
}

// ToDevice replaces the held tensor with its copy materialized on device.
// No-op if the tensor is already resident there.
func (p *Param[B]) ToDevice(device tensor.Device) {
	if p.value.Device() == device {
		return
	}
	p.value = p.value.ToDevice(device)
}

// State returns a data leaf wrapping an independent copy of the tensor's
// serialized contents.
func (p *Param[B]) State() *State {
	return DataState(p.value.ToData())
}

// Load reconstructs the held tensor from the state's leaf data on the
// current device. A named state is a shape mismatch and is silently ignored.
func (p *Param[B]) Load(state *State) {
	if state == nil {
		return
	}
	data, ok := state.Data()
	if !ok {
		return
	}
	p.value = tensor.FromData[float32](data, p.value.Device(), p.value.Backend())
}

// InnerParam returns a copy of the parameter detached from gradient history,
// bound to the wrapped base backend. The copy's data is independent of the
// original's.
func InnerParam[B tensor.Backend](p *Param[*autodiff.Backend[B]]) *Param[B] {
	return NewParam(innerTensor[B](p.value))
}

// innerTensor rebinds a tensor from the autodiff decorator to its base
// backend, copying the data and preserving the device.
func innerTensor[B tensor.Backend](t *tensor.Tensor[float32, *autodiff.Backend[B]]) *tensor.Tensor[float32, B] {
	base := t.Backend().Inner()
	raw := base.FromData(t.ToData(), t.Device())
	return tensor.New[float32, B](raw, base)
}
