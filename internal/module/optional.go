package module

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// Verify that the optional-leaf shape satisfies the Module contract.
var _ Module[*tensor.MockBackend] = (*OptionalParam[*tensor.MockBackend])(nil)

// OptionalParam is the optional-leaf container shape: a parameter tensor
// that may be absent, such as the bias of a layer constructed without one.
// Absence is a structural property fixed at construction; it is treated as
// the neutral element of every operation and cannot be revived by Load.
type OptionalParam[B tensor.Backend] struct {
	value *tensor.Tensor[float32, B]
}

// NewOptionalParam creates an optional leaf container. A nil tensor means
// the parameter is absent.
func NewOptionalParam[B tensor.Backend](t *tensor.Tensor[float32, B]) *OptionalParam[B] {
	return &OptionalParam[B]{value: t}
}

// Value returns the held tensor for reading, or nil if absent.
func (p *OptionalParam[B]) Value() *tensor.Tensor[float32, B] {
	return p.value
}

// Present reports whether a parameter is held.
func (p *OptionalParam[B]) Present() bool {
	return p.value != nil
}

// Name returns the container's diagnostic name.
func (p *OptionalParam[B]) Name() string {
	return "OptionalParam"
}

// NumParams returns the held tensor's element count, or 0 if absent.
func (p *OptionalParam[B]) NumParams() int {
	if p.value == nil {
		return 0
	}
	return p.value.NumElements()
}

// UpdateParams delegates the held tensor to the optimizer's update rule.
// No-op if absent.
func (p *OptionalParam[B]) UpdateParams(grads autodiff.Gradients, optim Optimizer[B]) {
	if p.value == nil {
		return
	}
	optim.Update(p.value, grads)
}

// Devices returns the held tensor's device, or an empty sequence if absent.
func (p *OptionalParam[B]) Devices() []tensor.Device {
	if p.value == nil {
		return nil
	}
	return []tensor.Device{p.value.Device()}
}

// ToDevice replaces the held tensor with its copy materialized on device.
// No-op if absent.
func (p *OptionalParam[B]) ToDevice(device tensor.Device) {
	if p.value == nil {
		return
	}
	p.value = p.value.ToDevice(device)
}

// State returns a data leaf if present, or an empty named node as the
// explicit "no parameter" sentinel if absent.
func (p *OptionalParam[B]) State() *State {
	if p.value == nil {
		return NamedState()
	}
	return DataState(p.value.ToData())
}

// Load applies leaf data on the current device only if a value is already
// present. An absent optional stays absent regardless of the state's
// contents; a named state is silently ignored.
func (p *OptionalParam[B]) Load(state *State) {
	if state == nil {
		return
	}
	data, ok := state.Data()
	if !ok {
		return
	}
	if p.value == nil {
		return
	}
	p.value = tensor.FromData[float32](data, p.value.Device(), p.value.Backend())
}

// InnerOptionalParam maps a present value through the inference-mode
// conversion; an absent optional remains absent.
func InnerOptionalParam[B tensor.Backend](p *OptionalParam[*autodiff.Backend[B]]) *OptionalParam[B] {
	if p.value == nil {
		return NewOptionalParam[B](nil)
	}
	return NewOptionalParam(innerTensor[B](p.value))
}
