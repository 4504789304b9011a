package optim

import (
	"math"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/module"
	"github.com/ember-ml/ember/internal/tensor"
)

// Adam implements the Adam (adaptive moment estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²
//	m_hat = m_t / (1 - beta1^t)
//	v_hat = v_t / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014).
type Adam[B tensor.Backend] struct {
	lr     float32
	beta1  float32
	beta2  float32
	eps    float32
	states map[*tensor.RawTensor]*adamState
}

// adamState is the per-tensor bookkeeping: moment estimates and timestep.
type adamState struct {
	m, v []float32
	step int
}

// Verify that Adam satisfies the optimizer capability.
var _ module.Optimizer[*tensor.MockBackend] = (*Adam[*tensor.MockBackend])(nil)

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float32    // Learning rate (default: 0.001)
	Betas [2]float32 // Running-average coefficients (default: [0.9, 0.999])
	Eps   float32    // Numerical-stability term (default: 1e-8)
}

// NewAdam creates a new Adam optimizer with defaults filled in for
// zero-valued configuration fields.
func NewAdam[B tensor.Backend](config AdamConfig) *Adam[B] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam[B]{
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		states: make(map[*tensor.RawTensor]*adamState),
	}
}

// Update applies the Adam rule to a single parameter tensor in place.
// Tensors with no recorded gradient are left untouched.
func (a *Adam[B]) Update(t *tensor.Tensor[float32, B], grads autodiff.Gradients) {
	grad := gradientFor(t, grads)
	if grad == nil {
		return
	}

	paramData := t.Raw().AsFloat32()
	gradData := grad.AsFloat32()

	state, ok := a.states[t.Raw()]
	if !ok {
		state = &adamState{
			m: make([]float32, len(paramData)),
			v: make([]float32, len(paramData)),
		}
		a.states[t.Raw()] = state
	}
	state.step++

	biasCorrection1 := float32(1.0 - math.Pow(float64(a.beta1), float64(state.step)))
	biasCorrection2 := float32(1.0 - math.Pow(float64(a.beta2), float64(state.step)))

	for i := range paramData {
		g := gradData[i]
		state.m[i] = a.beta1*state.m[i] + (1.0-a.beta1)*g
		state.v[i] = a.beta2*state.v[i] + (1.0-a.beta2)*g*g

		mHat := state.m[i] / biasCorrection1
		vHat := state.v[i] / biasCorrection2

		paramData[i] -= a.lr * mHat / (float32(math.Sqrt(float64(vHat))) + a.eps)
	}
}

// LR returns the current learning rate.
func (a *Adam[B]) LR() float32 {
	return a.lr
}

// SetLR updates the learning rate, for scheduling.
func (a *Adam[B]) SetLR(lr float32) {
	a.lr = lr
}
