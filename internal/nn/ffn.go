package nn

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/module"
	"github.com/ember-ml/ember/internal/tensor"
)

// FFN is a two-layer feed-forward block: Output(relu(Input(x))).
// Its sub-layers are held through the nested container shape, so the block
// demonstrates recursion through an extra container level: its state tree
// is {"input": {...}, "output": {...}} with each Linear's tree below.
type FFN[B tensor.Backend] struct {
	Input  *module.Nested[B, *Linear[B]]
	Output *module.Nested[B, *Linear[B]]

	config FFNConfig
	def    *module.Def[B]
}

// FFNConfig holds construction options for FFN.
type FFNConfig struct {
	In     int // Input features
	Hidden int // Hidden features
	Out    int // Output features
}

// NewFFN creates a feed-forward block with two bias-carrying Linears.
func NewFFN[B tensor.Backend](config FFNConfig, backend B) *FFN[B] {
	input := module.NewNested[B](NewLinear(LinearConfig{In: config.In, Out: config.Hidden}, backend))
	output := module.NewNested[B](NewLinear(LinearConfig{In: config.Hidden, Out: config.Out}, backend))
	return newFFN(config, input, output)
}

func newFFN[B tensor.Backend](config FFNConfig, input, output *module.Nested[B, *Linear[B]]) *FFN[B] {
	f := &FFN[B]{Input: input, Output: output, config: config}
	f.def = module.Define("FFN",
		module.Field[B]{Name: "input", Module: f.Input},
		module.Field[B]{Name: "output", Module: f.Output},
	)
	return f
}

// Forward computes the block's output for input of shape [batch, in].
func (f *FFN[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	hidden := f.Input.Value().Forward(input).Relu()
	return f.Output.Value().Forward(hidden)
}

// Name returns the block's diagnostic name.
func (f *FFN[B]) Name() string { return f.def.Name() }

// NumParams returns the block's total parameter count.
func (f *FFN[B]) NumParams() int { return f.def.NumParams() }

// UpdateParams applies the optimizer to both sub-layers.
func (f *FFN[B]) UpdateParams(grads autodiff.Gradients, optim module.Optimizer[B]) {
	f.def.UpdateParams(grads, optim)
}

// Devices returns the devices of both sub-layers.
func (f *FFN[B]) Devices() []tensor.Device { return f.def.Devices() }

// ToDevice moves both sub-layers to device.
func (f *FFN[B]) ToDevice(device tensor.Device) { f.def.ToDevice(device) }

// State returns the block's parameter tree.
func (f *FFN[B]) State() *module.State { return f.def.State() }

// Load restores both sub-layers from state.
func (f *FFN[B]) Load(state *module.State) { f.def.Load(state) }

// InnerFFN returns the block's inference-mode counterpart.
func InnerFFN[B tensor.Backend](f *FFN[*autodiff.Backend[B]]) *FFN[B] {
	return newFFN(f.config,
		module.InnerNested(f.Input, InnerLinear[B]),
		module.InnerNested(f.Output, InnerLinear[B]),
	)
}
