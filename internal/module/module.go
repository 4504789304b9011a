package module

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// Module is the contract every trainable structure satisfies: the four
// container shapes implement it directly, user structures implement it via a
// Def produced by the derivation subsystem.
//
// NumParams, Devices and State are read-only; UpdateParams, ToDevice and
// Load mutate the receiver in place. State and the Inner conversions always
// produce independent values that share no mutable storage with the
// receiver.
type Module[B tensor.Backend] interface {
	// Name returns the structure's declared name, for diagnostics only.
	Name() string

	// NumParams returns the total number of scalar parameters held below
	// this node.
	NumParams() int

	// UpdateParams applies the optimizer's update rule to every parameter
	// tensor below this node, in a deterministic traversal order. The
	// gradient bag is passed through untouched; the optimizer indexes it
	// by tensor identity.
	UpdateParams(grads autodiff.Gradients, optim Optimizer[B])

	// Devices returns the device of every parameter tensor below this
	// node, in traversal order, duplicates retained.
	Devices() []tensor.Device

	// ToDevice moves every parameter tensor below this node to device.
	ToDevice(device tensor.Device)

	// State returns the persisted form of the parameter tree below this
	// node. Leaf contents are independent copies.
	State() *State

	// Load restores parameter data from state, reconstructing each leaf on
	// its current device. Shape mismatches between the state tree and the
	// receiver (a leaf where a named node is expected, a missing key) are
	// silently ignored, leaving the affected parameters unchanged.
	Load(state *State)
}

// Optimizer is the update-rule capability the runtime delegates to during
// UpdateParams. Update mutates t in place; it receives the full gradient
// bag and indexes it however it likes, typically by tensor identity.
type Optimizer[B tensor.Backend] interface {
	Update(t *tensor.Tensor[float32, B], grads autodiff.Gradients)
}

// ADModule is a Module bound to an autodiff backend that can produce its
// inference-only counterpart: the same structure instantiated over the
// wrapped base backend, with every leaf tensor's data copied out of the
// gradient-capable representation. The counterpart shares no mutable state
// with the original.
//
// Generic structures compose their Inner method from the per-shape
// conversion helpers (InnerParam, InnerOptionalParam, InnerNested,
// InnerList).
type ADModule[B tensor.Backend, Inner Module[B]] interface {
	Module[*autodiff.Backend[B]]

	// Inner returns the freshly constructed inference-mode counterpart.
	Inner() Inner
}
