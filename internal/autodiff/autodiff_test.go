package autodiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/tensor"
)

func TestBackend_Delegation(t *testing.T) {
	base := tensor.NewMockBackend(2)
	ad := New(base)

	assert.Equal(t, "autodiff(mock)", ad.Name())
	assert.Same(t, base, ad.Inner())
	assert.Equal(t, base.Device(), ad.Device())
	assert.Equal(t, base.Devices(), ad.Devices())

	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, ad)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 4}, x.Add(x).Data())
}

func TestBackend_AccumulateGrad(t *testing.T) {
	ad := New(tensor.NewMockBackend(1))

	param, err := tensor.FromSlice([]float32{0, 0}, tensor.Shape{2}, ad)
	require.NoError(t, err)
	g1, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, ad)
	require.NoError(t, err)
	g2, err := tensor.FromSlice([]float32{10, 20}, tensor.Shape{2}, ad)
	require.NoError(t, err)

	ad.AccumulateGrad(param.Raw(), g1.Raw())
	assert.Equal(t, []float32{1, 2}, ad.Gradients().Get(param.Raw()).AsFloat32())

	// Second accumulation sums.
	ad.AccumulateGrad(param.Raw(), g2.Raw())
	assert.Equal(t, []float32{11, 22}, ad.Gradients().Get(param.Raw()).AsFloat32())
}

func TestBackend_ZeroGrad(t *testing.T) {
	ad := New(tensor.NewMockBackend(1))
	param, err := tensor.FromSlice([]float32{0}, tensor.Shape{1}, ad)
	require.NoError(t, err)
	g, err := tensor.FromSlice([]float32{5}, tensor.Shape{1}, ad)
	require.NoError(t, err)

	ad.AccumulateGrad(param.Raw(), g.Raw())
	ad.ZeroGrad()

	assert.Nil(t, ad.Gradients().Get(param.Raw()))
}

func TestGradients_GetMissing(t *testing.T) {
	var g Gradients
	assert.Nil(t, g.Get(nil))
}
