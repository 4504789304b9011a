package nn

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/module"
	"github.com/ember-ml/ember/internal/tensor"
)

// Sequential chains layers so each layer's output feeds the next layer's
// input. The layers are held through the list container shape, so the
// model's state tree is {"layers": {"mod-0": ..., "mod-1": ...}}.
type Sequential[B tensor.Backend] struct {
	Layers *module.List[B, Layer[B]]

	def *module.Def[B]
}

// NewSequential creates a Sequential over the given layers.
func NewSequential[B tensor.Backend](layers ...Layer[B]) *Sequential[B] {
	return newSequential(module.NewList[B](layers...))
}

func newSequential[B tensor.Backend](layers *module.List[B, Layer[B]]) *Sequential[B] {
	s := &Sequential[B]{Layers: layers}
	s.def = module.Define("Sequential",
		module.Field[B]{Name: "layers", Module: s.Layers},
	)
	return s
}

// Forward applies all layers in sequence.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	output := input
	for i := 0; i < s.Layers.Len(); i++ {
		output = s.Layers.At(i).Forward(output)
	}
	return output
}

// Len returns the number of layers.
func (s *Sequential[B]) Len() int { return s.Layers.Len() }

// At returns the layer at index i.
func (s *Sequential[B]) At(i int) Layer[B] { return s.Layers.At(i) }

// Name returns the model's diagnostic name.
func (s *Sequential[B]) Name() string { return s.def.Name() }

// NumParams returns the model's total parameter count.
func (s *Sequential[B]) NumParams() int { return s.def.NumParams() }

// UpdateParams applies the optimizer to every layer in order.
func (s *Sequential[B]) UpdateParams(grads autodiff.Gradients, optim module.Optimizer[B]) {
	s.def.UpdateParams(grads, optim)
}

// Devices returns the devices of all layers.
func (s *Sequential[B]) Devices() []tensor.Device { return s.def.Devices() }

// ToDevice moves every layer to device.
func (s *Sequential[B]) ToDevice(device tensor.Device) { s.def.ToDevice(device) }

// State returns the model's parameter tree.
func (s *Sequential[B]) State() *module.State { return s.def.State() }

// Load restores every layer from state.
func (s *Sequential[B]) Load(state *module.State) { s.def.Load(state) }

// InnerSequential returns the model's inference-mode counterpart. conv
// converts one layer; it typically type-switches over the layer kinds the
// model contains and dispatches to their Inner* functions.
func InnerSequential[B tensor.Backend](
	s *Sequential[*autodiff.Backend[B]],
	conv func(Layer[*autodiff.Backend[B]]) Layer[B],
) *Sequential[B] {
	return newSequential(module.InnerList(s.Layers, conv))
}
