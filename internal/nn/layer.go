package nn

import (
	"github.com/ember-ml/ember/internal/module"
	"github.com/ember-ml/ember/internal/tensor"
)

// Layer is a Module that additionally computes an output from an input
// tensor. All layers in this package satisfy it.
type Layer[B tensor.Backend] interface {
	module.Module[B]

	// Forward computes the layer's output for input.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}
