package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/autodiff"
	"github.com/ember-ml/ember/internal/tensor"
)

type adB = *autodiff.Backend[*tensor.MockBackend]

func newADTensor(t *testing.T, backend adB, data []float32, shape tensor.Shape) *tensor.Tensor[float32, adB] {
	t.Helper()
	ten, err := tensor.FromSlice(data, shape, backend)
	require.NoError(t, err)
	return ten
}

func TestInnerParam(t *testing.T) {
	ad := autodiff.New(tensor.NewMockBackend(2))
	p := NewParam(newADTensor(t, ad, []float32{1, 2, 3}, tensor.Shape{3}))
	p.ToDevice(tensor.Device{Kind: tensor.CUDA, Index: 1})

	inner := InnerParam(p)

	assert.Equal(t, p.NumParams(), inner.NumParams())
	assert.Equal(t, p.Devices(), inner.Devices(), "device is preserved")
	assert.Equal(t, []float32{1, 2, 3}, inner.Value().Data())

	// No shared storage with the original.
	p.Value().Data()[0] = 99
	assert.Equal(t, float32(1), inner.Value().Data()[0])
}

func TestInnerOptionalParam(t *testing.T) {
	ad := autodiff.New(tensor.NewMockBackend(1))

	absent := InnerOptionalParam(NewOptionalParam[adB](nil))
	assert.False(t, absent.Present())

	present := InnerOptionalParam(NewOptionalParam(newADTensor(t, ad, []float32{4}, tensor.Shape{1})))
	require.True(t, present.Present())
	assert.Equal(t, []float32{4}, present.Value().Data())
}

func TestInnerNested(t *testing.T) {
	ad := autodiff.New(tensor.NewMockBackend(1))
	n := NewNested[adB](NewParam(newADTensor(t, ad, []float32{1, 2}, tensor.Shape{2})))

	inner := InnerNested(n, InnerParam[*tensor.MockBackend])

	assert.Equal(t, n.NumParams(), inner.NumParams())
	assert.Equal(t, []float32{1, 2}, inner.Value().Value().Data())
}

func TestInnerList(t *testing.T) {
	ad := autodiff.New(tensor.NewMockBackend(1))
	l := NewList[adB](
		NewParam(newADTensor(t, ad, []float32{1}, tensor.Shape{1})),
		NewParam(newADTensor(t, ad, []float32{2, 3}, tensor.Shape{2})),
	)

	inner := InnerList(l, InnerParam[*tensor.MockBackend])

	assert.Equal(t, l.Len(), inner.Len())
	assert.Equal(t, l.NumParams(), inner.NumParams())
	assert.Equal(t, []float32{2, 3}, inner.At(1).Value().Data())
}

// trainBlock is a derived structure bound to an autodiff backend that can
// produce its inference-mode counterpart.
type trainBlock struct {
	weight *Param[adB]
	scale  *OptionalParam[adB]
	*Def[adB]
}

type inferBlock struct {
	weight *Param[*tensor.MockBackend]
	scale  *OptionalParam[*tensor.MockBackend]
	*Def[*tensor.MockBackend]
}

func newTrainBlock(t *testing.T, ad adB) *trainBlock {
	t.Helper()
	b := &trainBlock{
		weight: NewParam(newADTensor(t, ad, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})),
		scale:  NewOptionalParam(newADTensor(t, ad, []float32{0.5}, tensor.Shape{1})),
	}
	b.Def = Define("Block",
		Field[adB]{Name: "weight", Module: b.weight},
		Field[adB]{Name: "scale", Module: b.scale},
	)
	return b
}

func (b *trainBlock) Inner() *inferBlock {
	out := &inferBlock{
		weight: InnerParam(b.weight),
		scale:  InnerOptionalParam(b.scale),
	}
	out.Def = Define("Block",
		Field[*tensor.MockBackend]{Name: "weight", Module: out.weight},
		Field[*tensor.MockBackend]{Name: "scale", Module: out.scale},
	)
	return out
}

func TestADModule_Inner(t *testing.T) {
	ad := autodiff.New(tensor.NewMockBackend(1))
	block := newTrainBlock(t, ad)

	var m ADModule[*tensor.MockBackend, *inferBlock] = block
	inner := m.Inner()

	assert.Equal(t, block.NumParams(), inner.NumParams())
	assert.True(t, block.State().Equal(inner.State()), "state trees must match leaf for leaf")

	// Counterpart is independent of the original.
	block.weight.Value().Data()[0] = -9
	assert.Equal(t, float32(1), inner.weight.Value().Data()[0])
}
