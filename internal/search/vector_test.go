package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexLoadRejectsDimensionMismatch(t *testing.T) {
	ix := NewIndex(3)
	require.NoError(t, ix.Load([]Entry{{Code: "A", Vector: []float32{1, 0, 0}}}))

	err := ix.Load([]Entry{
		{Code: "B", Vector: []float32{0, 1, 0}},
		{Code: "C", Vector: []float32{0, 1}},
	})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	// The failed load left the previous contents active.
	assert.Equal(t, 1, ix.Len())
	got, err := ix.NearestTo([]float32{1, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Code)
}

func TestNearestToEmptyIndex(t *testing.T) {
	ix := NewIndex(3)
	got, err := ix.NearestTo([]float32{1, 2, 3}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNearestToOrderingAndTies(t *testing.T) {
	ix := NewIndex(2)
	require.NoError(t, ix.Load([]Entry{
		{Code: "far", Vector: []float32{10, 0}},
		{Code: "tie1", Vector: []float32{0, 1}},
		{Code: "tie2", Vector: []float32{1, 0}},
		{Code: "near", Vector: []float32{0.1, 0}},
	}))

	got, err := ix.NearestTo([]float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "near", got[0].Code)
	// Equidistant entries keep catalog insertion order.
	assert.Equal(t, "tie1", got[1].Code)
	assert.Equal(t, "tie2", got[2].Code)
}

func TestNearestToWrongQueryDimension(t *testing.T) {
	ix := NewIndex(3)
	require.NoError(t, ix.Load([]Entry{{Code: "A", Vector: []float32{1, 0, 0}}}))

	_, err := ix.NearestTo([]float32{1, 0}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSimilarityMonotone(t *testing.T) {
	prev := Similarity(0)
	assert.Equal(t, 1.0, prev)
	for _, d := range []float64{0.1, 0.5, 1, 2, 10, 1000} {
		s := Similarity(d)
		assert.Less(t, s, prev)
		assert.Greater(t, s, 0.0)
		prev = s
	}
	// The semantic-only acceptance floor corresponds to distance 1.
	assert.InDelta(t, 0.5, Similarity(1), 1e-12)
}
