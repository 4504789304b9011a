package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/tensor"
)

func TestOptionalParam_Absent(t *testing.T) {
	p := NewOptionalParam[*tensor.MockBackend](nil)

	assert.False(t, p.Present())
	assert.Nil(t, p.Value())
	assert.Equal(t, 0, p.NumParams())
	assert.Empty(t, p.Devices())

	// Mutating operations on an absent optional are no-ops.
	p.ToDevice(tensor.Device{Kind: tensor.CUDA, Index: 0})
	p.UpdateParams(nil, nil)
	assert.False(t, p.Present())
}

func TestOptionalParam_AbsentStateSentinel(t *testing.T) {
	p := NewOptionalParam[*tensor.MockBackend](nil)

	state := p.State()
	require.False(t, state.IsData())
	assert.Equal(t, 0, state.Len())
}

func TestOptionalParam_Present(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	p := NewOptionalParam(newTestTensor(t, backend, []float32{1, 2, 3}, tensor.Shape{3}))

	assert.True(t, p.Present())
	assert.Equal(t, 3, p.NumParams())
	assert.Len(t, p.Devices(), 1)

	state := p.State()
	require.True(t, state.IsData())
}

func TestOptionalParam_RoundTrip(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	original := []float32{4, 5, 6}
	p := NewOptionalParam(newTestTensor(t, backend, original, tensor.Shape{3}))

	state := p.State()
	p.Value().Data()[1] = -1
	p.Load(state)

	assert.Equal(t, original, p.Value().Data())
}

func TestOptionalParam_LoadCannotRevive(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	donor := newTestTensor(t, backend, []float32{7, 8}, tensor.Shape{2})

	p := NewOptionalParam[*tensor.MockBackend](nil)
	p.Load(DataState(donor.ToData()))

	assert.False(t, p.Present(), "absence is structural; data in the state must not revive it")
	assert.Equal(t, 0, p.NumParams())
}

func TestOptionalParam_LoadIgnoresSentinelWhenPresent(t *testing.T) {
	backend := tensor.NewMockBackend(1)
	original := []float32{1, 2}
	p := NewOptionalParam(newTestTensor(t, backend, original, tensor.Shape{2}))

	p.Load(NamedState())

	assert.True(t, p.Present())
	assert.Equal(t, original, p.Value().Data())
}
