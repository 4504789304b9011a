package optim

import (
	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/module"
	"github.com/ember-ml/ember/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD[B tensor.Backend] struct {
	lr         float32
	momentum   float32
	velocities map[*tensor.RawTensor][]float32
}

// Verify that SGD satisfies the optimizer capability.
var _ module.Optimizer[*tensor.MockBackend] = (*SGD[*tensor.MockBackend])(nil)

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD[B tensor.Backend](config SGDConfig) *SGD[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD[B]{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*tensor.RawTensor][]float32),
	}
}

// Update applies the SGD rule to a single parameter tensor in place.
// Tensors with no recorded gradient are left untouched.
func (s *SGD[B]) Update(t *tensor.Tensor[float32, B], grads autodiff.Gradients) {
	grad := gradientFor(t, grads)
	if grad == nil {
		return
	}

	paramData := t.Raw().AsFloat32()
	gradData := grad.AsFloat32()

	if s.momentum == 0 {
		for i := range paramData {
			paramData[i] -= s.lr * gradData[i]
		}
		return
	}

	velocity, ok := s.velocities[t.Raw()]
	if !ok {
		velocity = make([]float32, len(paramData))
		s.velocities[t.Raw()] = velocity
	}

	for i := range paramData {
		velocity[i] = s.momentum*velocity[i] + gradData[i]
		paramData[i] -= s.lr * velocity[i]
	}
}

// LR returns the current learning rate.
func (s *SGD[B]) LR() float32 {
	return s.lr
}

// SetLR updates the learning rate, for scheduling.
func (s *SGD[B]) SetLR(lr float32) {
	s.lr = lr
}
