package evaluate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"

	"github.com/Noofbiz/latent/latent"
)

// roundRobin assigns row i to cluster i mod k.
type roundRobin struct{ k int }

func (r *roundRobin) SetClusterCount(k int) { r.k = k }

func (r *roundRobin) FitPredict(X mat.Matrix) ([]int, error) {
	n, _ := X.Dims()
	out := make([]int, n)
	for i := range out {
		out[i] = i % r.k
	}
	return out, nil
}

// collapse puts every row in cluster 0.
type collapse struct{}

func (collapse) SetClusterCount(int) {}

func (collapse) FitPredict(X mat.Matrix) ([]int, error) {
	n, _ := X.Dims()
	return make([]int, n), nil
}

func blobs(eng *latent.Engine, n int) *latent.Matrix {
	X := latent.NewMatrix(2*n, 2, nil)
	for i := 0; i < 2*n; i++ {
		cx := 0.0
		if i >= n {
			cx = 20
		}
		X.Set(i, 0, cx+eng.Normal(0, 0.5))
		X.Set(i, 1, eng.Normal(0, 0.5))
	}
	return X
}

func TestComputeGapShape(t *testing.T) {
	eng := latent.NewEngine(11)
	ev, err := NewEvaluator(eng, nil)
	require.NoError(t, err)

	res, err := ev.ComputeGap(&roundRobin{}, blobs(eng, 20), 5, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 5}, res.K)
	assert.Len(t, res.Gap, 4)
	assert.Len(t, res.LogReferenceInertia, 4)
	assert.Len(t, res.LogDataInertia, 4)
	assert.Empty(t, res.Warnings)
	for i := range res.Gap {
		assert.InDelta(t, res.LogReferenceInertia[i]-res.LogDataInertia[i], res.Gap[i], 1e-12)
	}
	assert.Contains(t, res.K, res.BestK())
}

func TestComputeGapReproducible(t *testing.T) {
	run := func() *GapResult {
		eng := latent.NewEngine(3)
		ev, err := NewEvaluator(eng, nil)
		require.NoError(t, err)
		res, err := ev.ComputeGap(&roundRobin{}, blobs(eng, 10), 3, 4)
		require.NoError(t, err)
		return res
	}
	assert.Equal(t, run(), run())
}

func TestComputeGapWarnsOnEmptyClusters(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ev, err := NewEvaluator(latent.NewEngine(1), zap.New(core))
	require.NoError(t, err)

	res, err := ev.ComputeGap(collapse{}, blobs(latent.NewEngine(2), 5), 3, 2)
	require.NoError(t, err)
	// Every fit (2 references and 1 data fit, for k=2 and k=3) collapses.
	require.Len(t, res.Warnings, 6)
	assert.Equal(t, 6, logs.FilterMessage("empty clusters").Len())
	for _, w := range res.Warnings {
		assert.Equal(t, 1, w.Got)
	}
	assert.False(t, res.Warnings[2].Reference)
	assert.True(t, res.Warnings[0].Reference)
}

func TestComputeGapInvalidArguments(t *testing.T) {
	ev, err := NewEvaluator(latent.NewEngine(1), zap.NewNop())
	require.NoError(t, err)
	X := blobs(latent.NewEngine(1), 3)

	_, err = ev.ComputeGap(&roundRobin{}, X, 1, 10)
	assert.ErrorIs(t, err, latent.ErrInvalidConfiguration)
	_, err = ev.ComputeGap(&roundRobin{}, X, 3, 0)
	assert.ErrorIs(t, err, latent.ErrInvalidConfiguration)
	_, err = ev.ComputeGap(nil, X, 3, 1)
	assert.ErrorIs(t, err, latent.ErrInvalidConfiguration)
	_, err = ev.ComputeGap(&roundRobin{}, latent.NewMatrix(0, 2, nil), 3, 1)
	assert.ErrorIs(t, err, latent.ErrInvalidConfiguration)

	_, err = NewEvaluator(nil, nil)
	assert.ErrorIs(t, err, latent.ErrInvalidConfiguration)
}

// contiguous splits the rows into k consecutive runs.
type contiguous struct{ k int }

func (c *contiguous) SetClusterCount(k int) { c.k = k }

func (c *contiguous) FitPredict(X mat.Matrix) ([]int, error) {
	n, _ := X.Dims()
	out := make([]int, n)
	for i := range out {
		out[i] = i * c.k / n
	}
	return out, nil
}

func TestComputeGapWarnsOnZeroInertia(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ev, err := NewEvaluator(latent.NewEngine(1), zap.New(core))
	require.NoError(t, err)

	X := latent.NewMatrix(6, 1, []float64{0, 0, 0, 5, 5, 5})
	res, err := ev.ComputeGap(&contiguous{}, X, 2, 2)
	require.NoError(t, err)
	require.Len(t, res.ZeroInertia, 1)
	assert.Equal(t, ZeroInertiaWarning{K: 2, Reference: false}, res.ZeroInertia[0])
	assert.Equal(t, 1, logs.FilterMessage("zero inertia").Len())
	assert.True(t, math.IsInf(res.Gap[0], 1))
	assert.Zero(t, res.BestK())
}

func TestBestK(t *testing.T) {
	res := &GapResult{K: []int{2, 3, 4}, Gap: []float64{0.1, 0.7, 0.7}}
	assert.Equal(t, 3, res.BestK())
	res = &GapResult{K: []int{2, 3, 4}, Gap: []float64{0.1, math.Inf(1), 0.4}}
	assert.Equal(t, 4, res.BestK())
	assert.Zero(t, (&GapResult{}).BestK())
	var nilRes *GapResult
	assert.Zero(t, nilRes.BestK())
}
