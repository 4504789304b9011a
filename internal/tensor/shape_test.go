package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
	assert.Equal(t, 7, Shape{7}.NumElements())
	assert.Equal(t, 1, Shape{}.NumElements())
}

func TestShape_ComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{1}, Shape{5}.ComputeStrides())
}

func TestShape_Equal(t *testing.T) {
	assert.True(t, Shape{2, 3}.Equal(Shape{2, 3}))
	assert.False(t, Shape{2, 3}.Equal(Shape{3, 2}))
	assert.False(t, Shape{2, 3}.Equal(Shape{2, 3, 1}))
}

func TestBroadcastShapes(t *testing.T) {
	out, _, err := BroadcastShapes(Shape{2, 3}, Shape{3})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, out)

	out, _, err = BroadcastShapes(Shape{4, 1}, Shape{1, 5})
	require.NoError(t, err)
	assert.Equal(t, Shape{4, 5}, out)

	_, _, err = BroadcastShapes(Shape{2, 3}, Shape{4})
	assert.Error(t, err)
}

func TestShape_Clone_Independent(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 9
	assert.Equal(t, 2, s[0])
}
