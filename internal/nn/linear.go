package nn

import (
	"fmt"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/module"
	"github.com/ember-ml/ember/internal/tensor"
)

// Linear implements a fully connected layer: y = x @ W + b.
//
// The weight has shape [in, out] so the forward pass needs no transpose;
// the bias has shape [out] and broadcasts over the batch dimension. A layer
// built with NoBias holds an absent optional parameter: it contributes
// nothing to the parameter count or the state tree beyond the absence
// sentinel.
type Linear[B tensor.Backend] struct {
	Weight *module.Param[B]
	Bias   *module.OptionalParam[B]

	config LinearConfig
	def    *module.Def[B]
}

// LinearConfig holds construction options for Linear.
type LinearConfig struct {
	In     int  // Number of input features
	Out    int  // Number of output features
	NoBias bool // Omit the bias parameter entirely
}

// NewLinear creates a Linear layer with Xavier-initialized weights and a
// zero-initialized bias (unless disabled).
func NewLinear[B tensor.Backend](config LinearConfig, backend B) *Linear[B] {
	weight := module.NewParam(Xavier(config.In, config.Out, tensor.Shape{config.In, config.Out}, backend))

	var bias *module.OptionalParam[B]
	if config.NoBias {
		bias = module.NewOptionalParam[B](nil)
	} else {
		bias = module.NewOptionalParam(Zeros(tensor.Shape{config.Out}, backend))
	}

	return newLinear(config, weight, bias)
}

// newLinear assembles a Linear around existing containers and registers its
// field list.
func newLinear[B tensor.Backend](config LinearConfig, weight *module.Param[B], bias *module.OptionalParam[B]) *Linear[B] {
	l := &Linear[B]{Weight: weight, Bias: bias, config: config}
	l.def = module.Define("Linear",
		module.Field[B]{Name: "weight", Module: l.Weight},
		module.Field[B]{Name: "bias", Module: l.Bias},
	)
	return l
}

// Forward computes y = x @ W + b for input of shape [batch, in].
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != l.config.In {
		panic(fmt.Sprintf("Linear.Forward: expected input [batch, %d], got shape %v", l.config.In, shape))
	}

	output := input.MatMul(l.Weight.Value())
	if l.Bias.Present() {
		output = output.Add(l.Bias.Value())
	}
	return output
}

// Name returns the layer's diagnostic name.
func (l *Linear[B]) Name() string { return l.def.Name() }

// NumParams returns the layer's total parameter count.
func (l *Linear[B]) NumParams() int { return l.def.NumParams() }

// UpdateParams applies the optimizer to the layer's parameters.
func (l *Linear[B]) UpdateParams(grads autodiff.Gradients, optim module.Optimizer[B]) {
	l.def.UpdateParams(grads, optim)
}

// Devices returns the devices of the layer's parameters.
func (l *Linear[B]) Devices() []tensor.Device { return l.def.Devices() }

// ToDevice moves the layer's parameters to device.
func (l *Linear[B]) ToDevice(device tensor.Device) { l.def.ToDevice(device) }

// State returns the layer's parameter tree.
func (l *Linear[B]) State() *module.State { return l.def.State() }

// Load restores the layer's parameters from state.
func (l *Linear[B]) Load(state *module.State) { l.def.Load(state) }

// InnerLinear returns the layer's inference-mode counterpart on the base
// backend, sharing no mutable state with the original.
func InnerLinear[B tensor.Backend](l *Linear[*autodiff.Backend[B]]) *Linear[B] {
	return newLinear(l.config, module.InnerParam(l.Weight), module.InnerOptionalParam(l.Bias))
}
