//go:debug randseednop=0

package evaluate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noofbiz/latent/latent"
)

func TestKMeansSeparatesBlobs(t *testing.T) {
	X := blobs(latent.NewEngine(5), 15)
	km, err := NewKMeans(2)
	require.NoError(t, err)

	got, err := km.FitPredict(X)
	require.NoError(t, err)
	require.Len(t, got, 30)
	for i := 1; i < 15; i++ {
		assert.Equal(t, got[0], got[i])
		assert.Equal(t, got[15], got[15+i])
	}
	assert.NotEqual(t, got[0], got[15])
}

func TestKMeansSetClusterCount(t *testing.T) {
	km, err := NewKMeans(1)
	require.NoError(t, err)
	km.SetClusterCount(4)
	assert.Equal(t, 4, km.K)

	// More clusters than rows is clamped to the row count.
	got, err := km.FitPredict(latent.NewMatrix(2, 1, []float64{0, 5}))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestKMeansErrors(t *testing.T) {
	_, err := NewKMeans(0)
	assert.ErrorIs(t, err, latent.ErrInvalidConfiguration)

	km := &KMeans{}
	_, err = km.FitPredict(latent.NewMatrix(2, 1, nil))
	assert.ErrorIs(t, err, latent.ErrInvalidConfiguration)

	km.K = 2
	_, err = km.FitPredict(latent.NewMatrix(0, 1, nil))
	assert.ErrorIs(t, err, latent.ErrInvalidConfiguration)
}

func TestGapWithKMeansReproducibleOnceGlobalRandSeeded(t *testing.T) {
	run := func() []float64 {
		rand.Seed(9)
		ev, err := NewEvaluator(latent.NewEngine(7), nil)
		require.NoError(t, err)
		km, err := NewKMeans(2)
		require.NoError(t, err)
		res, err := ev.ComputeGap(km, blobs(latent.NewEngine(9), 20), 6, 3)
		require.NoError(t, err)
		return res.LogDataInertia
	}
	assert.Equal(t, run(), run())
}
