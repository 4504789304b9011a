package optim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

func TestAdam_Defaults(t *testing.T) {
	adam := NewAdam[*tensor.MockBackend](AdamConfig{})
	assert.Equal(t, float32(0.001), adam.LR())
}

func TestAdam_FirstStep(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	p, grads := newParamAndGrad(t, backend, []float32{1}, []float32{0.5})

	lr, beta1, beta2, eps := float32(0.1), float32(0.9), float32(0.999), float32(1e-8)
	adam := NewAdam[*tensor.MockBackend](AdamConfig{LR: lr, Betas: [2]float32{beta1, beta2}, Eps: eps})
	adam.Update(p, grads)

	// On the first step bias correction makes m_hat = g and v_hat = g^2, so
	// the update is close to a plain lr-sized step.
	g := float32(0.5)
	mHat := (1 - beta1) * g / (1 - beta1)
	vHat := (1 - beta2) * g * g / (1 - beta2)
	want := 1 - lr*mHat/(float32(math.Sqrt(float64(vHat)))+eps)

	assert.InDelta(t, want, p.Data()[0], 1e-6)
}

func TestAdam_StepCountPerTensor(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	a, gradsA := newParamAndGrad(t, backend, []float32{1}, []float32{1})
	b, gradsB := newParamAndGrad(t, backend, []float32{1}, []float32{1})

	adam := NewAdam[*tensor.MockBackend](AdamConfig{LR: 0.1})

	// Two steps on a, one on b: each tensor's bias correction uses its own
	// timestep, so a and b diverge.
	adam.Update(a, gradsA)
	adam.Update(a, gradsA)
	adam.Update(b, gradsB)

	assert.NotEqual(t, a.Data()[0], b.Data()[0])
}

func TestAdam_MissingGradientNoOp(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	p, err := tensor.FromSlice([]float32{3}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	adam := NewAdam[*tensor.MockBackend](AdamConfig{})
	adam.Update(p, autodiff.Gradients{})

	assert.Equal(t, []float32{3}, p.Data())
}

func TestAdam_ConvergesOnQuadratic(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	p, err := tensor.FromSlice([]float32{5}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	adam := NewAdam[*tensor.MockBackend](AdamConfig{LR: 0.1})

	// Minimize f(x) = x^2 with exact gradient 2x.
	for i := 0; i < 200; i++ {
		g, err := tensor.FromSlice([]float32{2 * p.Data()[0]}, tensor.Shape{1}, backend)
		require.NoError(t, err)
		adam.Update(p, autodiff.Gradients{p.Raw(): g.Raw()})
	}

	assert.InDelta(t, 0, p.Data()[0], 0.05)
}
