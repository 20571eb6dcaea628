package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noofbiz/latent/latent"
)

func TestComputeInertia(t *testing.T) {
	tests := []struct {
		name       string
		data       []float64
		assignment []int
		normalized float64
		plain      float64
	}{
		{
			name:       "identical points",
			data:       []float64{1, 1, 1, 1},
			assignment: []int{0, 0},
		},
		{
			name:       "one pair",
			data:       []float64{0, 0, 3, 4},
			assignment: []int{0, 0},
			normalized: 2.5,
			plain:      2.5,
		},
		{
			name:       "pair and singleton",
			data:       []float64{0, 0, 10, 10, 3, 4},
			assignment: []int{5, 2, 5},
			normalized: 2.5,
			plain:      1.25,
		},
		{
			name:       "all singletons",
			data:       []float64{0, 0, 3, 4, 6, 8},
			assignment: []int{0, 1, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X := latent.NewMatrix(len(tt.assignment), 2, tt.data)
			got, err := ComputeInertia(tt.assignment, X, true)
			require.NoError(t, err)
			assert.InDelta(t, tt.normalized, got, 1e-12)

			got, err = ComputeInertia(tt.assignment, X, false)
			require.NoError(t, err)
			assert.InDelta(t, tt.plain, got, 1e-12)
		})
	}
}

func TestComputeInertiaIgnoresLabelValues(t *testing.T) {
	X := latent.NewMatrix(4, 1, []float64{0, 1, 10, 13})
	a, err := ComputeInertia([]int{0, 0, 1, 1}, X, true)
	require.NoError(t, err)
	b, err := ComputeInertia([]int{7, 7, -3, -3}, X, true)
	require.NoError(t, err)
	assert.InDelta(t, a, b, 1e-12)
	assert.InDelta(t, 0.5+1.5, a, 1e-12)
}

func TestComputeInertiaErrors(t *testing.T) {
	X := latent.NewMatrix(3, 2, nil)
	_, err := ComputeInertia([]int{0, 1}, X, true)
	assert.ErrorIs(t, err, latent.ErrDimensionMismatch)

	got, err := ComputeInertia(nil, latent.NewMatrix(0, 2, nil), false)
	require.NoError(t, err)
	assert.Zero(t, got)
}
