package latent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategorical(t *testing.T, cfg CategoricalConfig) *GaussianCategorical {
	t.Helper()
	s, err := NewGaussianCategorical(NewEngine(1024), cfg)
	require.NoError(t, err)
	return s
}

func TestGaussianCategoricalDiscreteRowsAreOneHot(t *testing.T) {
	s := newCategorical(t, CategoricalConfig{NumClasses: 4, TotalSize: 10, Dim: 3, StdDev: 1})
	for _, bs := range []int{1, 7, 256} {
		b, err := s.Train(bs)
		require.NoError(t, err)
		assert.Equal(t, bs, b.Size())
		r, c := b.Discrete.Dims()
		assert.Equal(t, bs, r)
		assert.Equal(t, 4, c)
		requireOneHot(t, b.Discrete)
		r, c = b.Continuous.Dims()
		assert.Equal(t, bs, r)
		assert.Equal(t, 3, c)
	}
}

func TestGaussianCategoricalLoadAllShapes(t *testing.T) {
	s := newCategorical(t, CategoricalConfig{NumClasses: 5, TotalSize: 123, Dim: 8, StdDev: 0.5})
	all := s.LoadAll()
	r, c := all.Continuous.Dims()
	assert.Equal(t, 123, r)
	assert.Equal(t, 8, c)
	r, c = all.Discrete.Dims()
	assert.Equal(t, 123, r)
	assert.Equal(t, 5, c)
	hot := requireOneHot(t, all.Discrete)
	assert.Equal(t, hot, all.Labels)
}

func TestGaussianCategoricalScaleAndSpread(t *testing.T) {
	s := newCategorical(t, CategoricalConfig{NumClasses: 2, TotalSize: 20000, Dim: 1, StdDev: 0.5, Scale: 2})
	var sum, sq float64
	data := s.LoadAll().Continuous.RawData()
	for _, v := range data {
		sum += v
		sq += v * v
	}
	n := float64(len(data))
	mean := sum / n
	std := math.Sqrt(sq/n - mean*mean)
	assert.InDelta(t, 0, mean, 0.05)
	assert.InDelta(t, 1.0, std, 0.05) // scale * std_dev
}

func TestGaussianCategoricalWeights(t *testing.T) {
	s := newCategorical(t, CategoricalConfig{NumClasses: 3, TotalSize: 0, Dim: 2, StdDev: 1})
	b, err := s.GetBatch(50, []float64{0, 1, 0})
	require.NoError(t, err)
	for _, l := range requireOneHot(t, b.Discrete) {
		assert.Equal(t, 1, l)
	}
	assert.Nil(t, b.Labels)

	_, err = s.GetBatch(5, []float64{0.5, 0.5})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = s.GetBatch(5, []float64{0.5, 0.4, 0.2})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = s.GetBatch(5, []float64{1.5, -0.5, 0})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestGaussianCategoricalInvalidConfiguration(t *testing.T) {
	cases := map[string]CategoricalConfig{
		"no classes":     {NumClasses: 0, Dim: 1, StdDev: 1},
		"no dim":         {NumClasses: 1, Dim: 0, StdDev: 1},
		"negative total": {NumClasses: 1, Dim: 1, TotalSize: -1, StdDev: 1},
		"zero std":       {NumClasses: 1, Dim: 1},
		"negative scale": {NumClasses: 1, Dim: 1, StdDev: 1, Scale: -1},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewGaussianCategorical(NewEngine(1), cfg)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
	_, err := NewGaussianCategorical(nil, CategoricalConfig{NumClasses: 1, Dim: 1, StdDev: 1})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestGaussianCategoricalEmptyBatch(t *testing.T) {
	s := newCategorical(t, CategoricalConfig{NumClasses: 2, Dim: 2, StdDev: 1})
	b, err := s.Train(0)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Size())
	_, err = s.Train(-1)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
