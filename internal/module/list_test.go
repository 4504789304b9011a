package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/tensor"
)

func newParamList(t *testing.T, backend *tensor.MockBackend, sizes ...int) *List[*tensor.MockBackend, *Param[*tensor.MockBackend]] {
	t.Helper()
	params := make([]*Param[*tensor.MockBackend], len(sizes))
	for i, n := range sizes {
		params[i] = NewParam(newTestTensor(t, backend, make([]float32, n), tensor.Shape{n}))
	}
	return NewList[*tensor.MockBackend](params...)
}

func TestList_NumParams(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	l := newParamList(t, backend, 2, 3, 5)

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 10, l.NumParams())
}

func TestList_StateKeys(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	l := newParamList(t, backend, 1, 1, 1)

	state := l.State()
	assert.Equal(t, []string{"mod-0", "mod-1", "mod-2"}, state.Keys())
}

func TestList_Empty(t *testing.T) {
	l := NewList[*tensor.MockBackend, *Param[*tensor.MockBackend]]()

	assert.Equal(t, 0, l.NumParams())
	assert.Empty(t, l.Devices())
	assert.Empty(t, l.State().Keys())
}

func TestList_DevicesConcatenated(t *testing.T) {
	backend := tensor.NewMockBackend(2)
	l := newParamList(t, backend, 1, 1)
	l.At(1).ToDevice(tensor.Device{Kind: tensor.CUDA, Index: 1})

	assert.Equal(t, []tensor.Device{
		{Kind: tensor.CUDA, Index: 0},
		{Kind: tensor.CUDA, Index: 1},
	}, l.Devices())
}

func TestList_ToDevice(t *testing.T) {
	backend := tensor.NewMockBackend(2)
	l := newParamList(t, backend, 1, 1, 1)

	target := tensor.Device{Kind: tensor.CUDA, Index: 1}
	l.ToDevice(target)

	for _, d := range l.Devices() {
		assert.Equal(t, target, d)
	}
}

func TestList_RoundTrip(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	l := NewList[*tensor.MockBackend](
		NewParam(newTestTensor(t, backend, []float32{1, 2}, tensor.Shape{2})),
		NewParam(newTestTensor(t, backend, []float32{3}, tensor.Shape{1})),
	)

	state := l.State()
	l.At(0).Value().Data()[0] = -1
	l.At(1).Value().Data()[0] = -1
	l.Load(state)

	assert.Equal(t, []float32{1, 2}, l.At(0).Value().Data())
	assert.Equal(t, []float32{3}, l.At(1).Value().Data())
}

func TestList_LoadMissingKeyLeniency(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	l := NewList[*tensor.MockBackend](
		NewParam(newTestTensor(t, backend, []float32{1}, tensor.Shape{1})),
		NewParam(newTestTensor(t, backend, []float32{2}, tensor.Shape{1})),
	)

	// State carries mod-0 only; mod-1 must keep its value.
	partial := NamedState()
	donor := newTestTensor(t, backend, []float32{9}, tensor.Shape{1})
	partial.Register("mod-0", DataState(donor.ToData()))
	l.Load(partial)

	assert.Equal(t, []float32{9}, l.At(0).Value().Data())
	assert.Equal(t, []float32{2}, l.At(1).Value().Data())
}

func TestList_LoadDataLeafIgnored(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	l := newParamList(t, backend, 1)
	before := l.At(0).Value()

	donor := newTestTensor(t, backend, []float32{9}, tensor.Shape{1})
	l.Load(DataState(donor.ToData()))

	require.Same(t, before, l.At(0).Value())
}
