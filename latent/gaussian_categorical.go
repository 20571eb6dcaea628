package latent

import "gonum.org/v1/gonum/stat/distuv"

// CategoricalConfig configures a GaussianCategorical sampler.
type CategoricalConfig struct {
	// NumClasses is the number of categories of the discrete part.
	NumClasses int
	// TotalSize is the number of rows materialised at construction.
	TotalSize int
	// Dim is the length of the continuous part.
	Dim int
	// StdDev is the per-coordinate standard deviation of the continuous part.
	StdDev float64
	// Scale multiplies the continuous draws. Zero means 1.
	Scale float64
}

// GaussianCategorical draws a continuous Gaussian vector and a one-hot
// categorical vector with no dependence between the two. Train returns
// marginal samples: the continuous and discrete rows of a batch are not
// aligned.
type GaussianCategorical struct {
	cfg CategoricalConfig
	eng *Engine

	xc     *Matrix
	xd     *Matrix
	labels []int
}

var _ Sampler = (*GaussianCategorical)(nil)

// NewGaussianCategorical validates cfg and materialises the dataset from a
// sub-stream of eng.
func NewGaussianCategorical(eng *Engine, cfg CategoricalConfig) (*GaussianCategorical, error) {
	if eng == nil {
		return nil, invalidf("nil engine")
	}
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	switch {
	case cfg.NumClasses < 1:
		return nil, invalidf("num_classes must be >= 1, got %d", cfg.NumClasses)
	case cfg.Dim < 1:
		return nil, invalidf("dim must be >= 1, got %d", cfg.Dim)
	case cfg.TotalSize < 0:
		return nil, invalidf("total_size must be >= 0, got %d", cfg.TotalSize)
	case !(cfg.StdDev > 0):
		return nil, invalidf("std_dev must be > 0, got %v", cfg.StdDev)
	case !(cfg.Scale > 0):
		return nil, invalidf("scale must be > 0, got %v", cfg.Scale)
	}

	s := &GaussianCategorical{cfg: cfg, eng: eng.Derive()}
	s.xc = s.drawContinuous(cfg.TotalSize)
	uniform, _ := normalizeWeights(nil, cfg.NumClasses)
	s.labels = drawLabels(s.eng, uniform, cfg.TotalSize)
	s.xd = OneHot(s.labels, cfg.NumClasses)
	return s, nil
}

func (s *GaussianCategorical) drawContinuous(n int) *Matrix {
	m := NewMatrix(n, s.cfg.Dim, nil)
	norm := distuv.Normal{Mu: 0, Sigma: s.cfg.StdDev, Src: s.eng.Source()}
	for i := range m.data {
		m.data[i] = s.cfg.Scale * norm.Rand()
	}
	return m
}

// Train redraws batchSize continuous rows and, independently, batchSize
// uniform one-hot rows.
func (s *GaussianCategorical) Train(batchSize int) (*Batch, error) {
	return s.GetBatch(batchSize, nil)
}

// GetBatch is Train with the discrete part drawn from weights.
func (s *GaussianCategorical) GetBatch(batchSize int, weights []float64) (*Batch, error) {
	if err := checkBatchSize(batchSize); err != nil {
		return nil, err
	}
	w, err := normalizeWeights(weights, s.cfg.NumClasses)
	if err != nil {
		return nil, err
	}
	xc := s.drawContinuous(batchSize)
	labels := drawLabels(s.eng, w, batchSize)
	return &Batch{Continuous: xc, Discrete: OneHot(labels, s.cfg.NumClasses)}, nil
}

// LoadAll returns a copy of the dataset materialised at construction.
func (s *GaussianCategorical) LoadAll() *Batch {
	all := &Batch{Continuous: s.xc, Discrete: s.xd, Labels: s.labels}
	return all.Clone()
}

// Config returns the effective configuration.
func (s *GaussianCategorical) Config() CategoricalConfig { return s.cfg }
