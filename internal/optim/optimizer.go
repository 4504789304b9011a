// Package optim implements optimization algorithms for the Ember parameter
// runtime.
//
// Optimizers satisfy the module.Optimizer capability: the runtime walks the
// parameter tree and hands each leaf tensor to Update together with the full
// gradient bag. State an optimizer keeps per parameter (momentum, moment
// estimates) is keyed by tensor identity, so the traversal order of the
// owning module determines bookkeeping order deterministically.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	model := nn.NewLinear(nn.LinearConfig{In: 784, Out: 10}, backend)
//	sgd := optim.NewSGD[*autodiff.Backend[*cpu.Backend]](optim.SGDConfig{LR: 0.01})
//
//	grads := ...            // produced by the gradient engine
//	model.UpdateParams(grads, sgd)
package optim

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

// Config is the base configuration shared by all optimizers.
type Config struct {
	LR float32 // Learning rate
}

// gradientFor retrieves the gradient recorded for t, or nil if t did not
// participate in the backward pass.
func gradientFor[B tensor.Backend](t *tensor.Tensor[float32, B], grads autodiff.Gradients) *tensor.RawTensor {
	if t == nil {
		return nil
	}
	return grads.Get(t.Raw())
}
