package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/tensor"
)

func TestReLU_Forward(t *testing.T) {
	backend := cpu.New()
	relu := NewReLU[*cpu.Backend]()

	input, err := tensor.FromSlice([]float32{-1, 0, 2, -3}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	output := relu.Forward(input)
	assert.Equal(t, []float32{0, 0, 2, 0}, output.Data())

	assert.Equal(t, 0, relu.NumParams())
	assert.Equal(t, 0, relu.State().Len())
}

func TestEmbedding_Lookup(t *testing.T) {
	backend := cpu.New()
	emb := NewEmbedding(EmbeddingConfig{NumEmbeddings: 3, Dim: 2}, backend)
	copy(emb.Weight.Value().Data(), []float32{
		0, 1, // row 0
		2, 3, // row 1
		4, 5, // row 2
	})

	out := emb.Lookup([]int{2, 0, 2})
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.Equal(t, []float32{4, 5, 0, 1, 4, 5}, out.Data())

	assert.Panics(t, func() {
		emb.Lookup([]int{3})
	})
}

func TestFFN_Forward(t *testing.T) {
	backend := cpu.New()
	ffn := NewFFN(FFNConfig{In: 2, Hidden: 2, Out: 1}, backend)

	copy(ffn.Input.Value().Weight.Value().Data(), []float32{1, -1, 1, -1})
	copy(ffn.Input.Value().Bias.Value().Data(), []float32{0, 0})
	copy(ffn.Output.Value().Weight.Value().Data(), []float32{1, 1})
	copy(ffn.Output.Value().Bias.Value().Data(), []float32{0.5})

	input, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	// hidden = relu([3, -3]) = [3, 0]; out = 3 + 0 + 0.5
	output := ffn.Forward(input)
	assert.InDelta(t, 3.5, output.Data()[0], 1e-6)
}

func TestFFN_StateNesting(t *testing.T) {
	backend := cpu.New()
	ffn := NewFFN(FFNConfig{In: 2, Hidden: 3, Out: 2}, backend)

	state := ffn.State()
	assert.Equal(t, []string{"input", "output"}, state.Keys())

	input, ok := state.Get("input")
	require.True(t, ok)
	assert.Equal(t, []string{"weight", "bias"}, input.Keys())

	assert.Equal(t, (2*3+3)+(3*2+2), ffn.NumParams())
}

func TestSequential_ForwardAndState(t *testing.T) {
	backend := cpu.New()
	model := NewSequential[*cpu.Backend](
		NewLinear(LinearConfig{In: 2, Out: 3}, backend),
		NewReLU[*cpu.Backend](),
		NewLinear(LinearConfig{In: 3, Out: 1}, backend),
	)

	assert.Equal(t, 3, model.Len())
	assert.Equal(t, (2*3+3)+0+(3*1+1), model.NumParams())

	state := model.State()
	layers, ok := state.Get("layers")
	require.True(t, ok)
	assert.Equal(t, []string{"mod-0", "mod-1", "mod-2"}, layers.Keys())

	input, err := tensor.FromSlice([]float32{1, -1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	output := model.Forward(input)
	assert.Equal(t, tensor.Shape{1, 1}, output.Shape())
}

func TestSequential_RoundTrip(t *testing.T) {
	backend := cpu.New()
	model := NewSequential[*cpu.Backend](
		NewLinear(LinearConfig{In: 2, Out: 2}, backend),
		NewLinear(LinearConfig{In: 2, Out: 2}, backend),
	)

	state := model.State()
	first := model.At(0).(*Linear[*cpu.Backend])
	before := append([]float32(nil), first.Weight.Value().Data()...)

	first.Weight.Value().Data()[0] += 7
	model.Load(state)

	assert.Equal(t, before, first.Weight.Value().Data())
}

func TestInnerConversions(t *testing.T) {
	ad := autodiff.New(cpu.New())
	type adBackend = *autodiff.Backend[*cpu.Backend]

	linear := NewLinear(LinearConfig{In: 2, Out: 2}, ad)
	inferLinear := InnerLinear(linear)
	assert.Equal(t, linear.NumParams(), inferLinear.NumParams())
	assert.Equal(t, linear.Weight.Value().Data(), inferLinear.Weight.Value().Data())

	// The counterpart copies data: training updates don't leak into it.
	linear.Weight.Value().Data()[0] += 1
	assert.NotEqual(t, linear.Weight.Value().Data()[0], inferLinear.Weight.Value().Data()[0])

	ffn := NewFFN(FFNConfig{In: 2, Hidden: 2, Out: 2}, ad)
	inferFFN := InnerFFN(ffn)
	assert.True(t, ffn.State().Equal(inferFFN.State()))

	model := NewSequential[adBackend](
		NewLinear(LinearConfig{In: 2, Out: 2}, ad),
		NewReLU[adBackend](),
	)
	inferModel := InnerSequential(model, func(l Layer[adBackend]) Layer[*cpu.Backend] {
		switch layer := l.(type) {
		case *Linear[adBackend]:
			return InnerLinear(layer)
		case *ReLU[adBackend]:
			return InnerReLU(layer)
		default:
			t.Fatalf("unexpected layer type %T", l)
			return nil
		}
	})
	assert.Equal(t, model.NumParams(), inferModel.NumParams())
	assert.True(t, model.State().Equal(inferModel.State()))
}
