package latent

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// Placement selects how mixture means are laid out.
type Placement int

const (
	// PlacementHypercube draws each mean uniformly from [-5, 5]^dim. It is
	// used when there are no more classes than dimensions.
	PlacementHypercube Placement = iota + 1
	// PlacementCircle puts mean i at angle 2*pi*i/K on the unit circle
	// spanned by the first two coordinates, zero elsewhere.
	PlacementCircle
)

func (p Placement) String() string {
	switch p {
	case PlacementHypercube:
		return "hypercube"
	case PlacementCircle:
		return "circle"
	}
	return "unknown"
}

// hypercubeBound is the half-width of the box hypercube means are drawn from.
const hypercubeBound = 5.0

// defaultMixtureStdDev is used when MixtureConfig.StdDev is zero.
const defaultMixtureStdDev = 0.5

// choosePlacement maps (numClasses, dim) onto a placement.
func choosePlacement(numClasses, dim int) (Placement, error) {
	switch {
	case numClasses <= dim:
		return PlacementHypercube, nil
	case dim >= 2:
		return PlacementCircle, nil
	default:
		return 0, invalidf("%d classes cannot be placed on a circle in %d dimension(s)", numClasses, dim)
	}
}

// MixtureConfig configures a GaussianMixture sampler.
type MixtureConfig struct {
	NumClasses int
	TotalSize  int
	Dim        int
	// Weights is the categorical law of the labels. Nil means uniform.
	Weights []float64
	// StdDev is the per-coordinate standard deviation of every component.
	// Zero means 0.5.
	StdDev float64
}

// GaussianMixture draws a label first and then a continuous vector from
// that label's Gaussian component. The dataset drawn at construction is kept
// for the sampler's lifetime; Train sub-samples it.
type GaussianMixture struct {
	cfg       MixtureConfig
	eng       *Engine
	placement Placement

	means      [][]float64
	components []*distmv.Normal

	xc      *Matrix
	xd      *Matrix
	labels  []int
	byLabel [][]int
}

var _ LabelledSampler = (*GaussianMixture)(nil)

// NewGaussianMixture validates cfg, places the means and draws TotalSize
// labelled points from a sub-stream of eng.
func NewGaussianMixture(eng *Engine, cfg MixtureConfig) (*GaussianMixture, error) {
	if eng == nil {
		return nil, invalidf("nil engine")
	}
	if cfg.StdDev == 0 {
		cfg.StdDev = defaultMixtureStdDev
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
	}
	weights, err := normalizeWeights(cfg.Weights, cfg.NumClasses)
	if err != nil {
		return nil, err
	}
	cfg.Weights = weights
	placement, err := choosePlacement(cfg.NumClasses, cfg.Dim)
	if err != nil {
		return nil, err
	}

	s := &GaussianMixture{cfg: cfg, eng: eng.Derive(), placement: placement}
	s.means = s.placeMeans()

	variance := cfg.StdDev * cfg.StdDev
	s.components = make([]*distmv.Normal, cfg.NumClasses)
	for i, mu := range s.means {
		sigma := mat.NewSymDense(cfg.Dim, nil)
		for d := 0; d < cfg.Dim; d++ {
			sigma.SetSym(d, d, variance)
		}
		n, ok := distmv.NewNormal(mu, sigma, s.eng.Source())
		if !ok {
			return nil, invalidf("covariance of class %d is not positive definite", i)
		}
		s.components[i] = n
	}

	s.labels = drawLabels(s.eng, weights, cfg.TotalSize)
	s.xc = NewMatrix(cfg.TotalSize, cfg.Dim, nil)
	for i, l := range s.labels {
		s.components[l].Rand(s.xc.Row(i))
	}
	s.xd = OneHot(s.labels, cfg.NumClasses)
	s.byLabel = labelIndex(s.labels, cfg.NumClasses)
	return s, nil
}

func (s *GaussianMixture) placeMeans() [][]float64 {
	k, dim := s.cfg.NumClasses, s.cfg.Dim
	means := make([][]float64, k)
	switch s.placement {
	case PlacementHypercube:
		bounds := make([]r1.Interval, dim)
		for d := range bounds {
			bounds[d] = r1.Interval{Min: -hypercubeBound, Max: hypercubeBound}
		}
		box := distmv.NewUniform(bounds, s.eng.Source())
		for i := range means {
			means[i] = box.Rand(nil)
		}
	case PlacementCircle:
		for i := range means {
			mu := make([]float64, dim)
			theta := 2 * math.Pi * float64(i) / float64(k)
			mu[0], mu[1] = math.Cos(theta), math.Sin(theta)
			means[i] = mu
		}
	}
	return means
}

// Train samples batchSize stored rows uniformly with replacement.
func (s *GaussianMixture) Train(batchSize int) (*Batch, error) {
	return s.train(batchSize, false)
}

// TrainWithLabels is Train with the integer labels of the sampled rows.
func (s *GaussianMixture) TrainWithLabels(batchSize int) (*Batch, error) {
	return s.train(batchSize, true)
}

func (s *GaussianMixture) train(batchSize int, withLabels bool) (*Batch, error) {
	if err := checkBatchSize(batchSize); err != nil {
		return nil, err
	}
	if s.cfg.TotalSize == 0 {
		// Nothing stored to sub-sample: fall back to fresh joint draws.
		b, err := s.GetBatch(batchSize, s.cfg.Weights)
		if err == nil && !withLabels {
			b.Labels = nil
		}
		return b, err
	}
	idx := drawIndices(s.eng, s.cfg.TotalSize, batchSize)
	b := &Batch{Continuous: s.xc.Gather(idx), Discrete: s.xd.Gather(idx)}
	if withLabels {
		b.Labels = make([]int, batchSize)
		for i, j := range idx {
			b.Labels[i] = s.labels[j]
		}
	}
	return b, nil
}

// GetBatch draws fresh labels from weights (nil means uniform) and returns,
// for each label, a stored row carrying that label chosen uniformly among
// the stored rows of its class. A class with no stored rows gets a fresh
// draw from its component. The discrete part is always the one-hot of the
// drawn labels.
func (s *GaussianMixture) GetBatch(batchSize int, weights []float64) (*Batch, error) {
	if err := checkBatchSize(batchSize); err != nil {
		return nil, err
	}
	w, err := normalizeWeights(weights, s.cfg.NumClasses)
	if err != nil {
		return nil, err
	}
	labels := drawLabels(s.eng, w, batchSize)
	xc := NewMatrix(batchSize, s.cfg.Dim, nil)
	for i, l := range labels {
		rows := s.byLabel[l]
		if len(rows) == 0 {
			s.components[l].Rand(xc.Row(i))
			continue
		}
		copy(xc.Row(i), s.xc.Row(rows[s.eng.IntN(len(rows))]))
	}
	return &Batch{Continuous: xc, Discrete: OneHot(labels, s.cfg.NumClasses), Labels: labels}, nil
}

// PredictOne returns the index of the component under which point has the
// highest density, with equal priors. Ties go to the lowest index.
func (s *GaussianMixture) PredictOne(point []float64) (int, error) {
	if len(point) != s.cfg.Dim {
		return 0, mismatchf("point has length %d, sampler dim is %d", len(point), s.cfg.Dim)
	}
	return s.predict(point), nil
}

func (s *GaussianMixture) predict(point []float64) int {
	best, bestLP := 0, math.Inf(-1)
	for i, c := range s.components {
		if lp := c.LogProb(point); lp > bestLP {
			best, bestLP = i, lp
		}
	}
	return best
}

// PredictMany returns a lazy sequence applying PredictOne to each row of
// points. The column count is checked before the sequence is returned, and
// the sequence can be ranged over any number of times.
func (s *GaussianMixture) PredictMany(points mat.Matrix) (iter.Seq[int], error) {
	rows, cols := points.Dims()
	if cols != s.cfg.Dim {
		return nil, mismatchf("points have %d columns, sampler dim is %d", cols, s.cfg.Dim)
	}
	return func(yield func(int) bool) {
		buf := make([]float64, cols)
		for i := 0; i < rows; i++ {
			mat.Row(buf, i, points)
			if !yield(s.predict(buf)) {
				return
			}
		}
	}, nil
}

// LoadAll returns a copy of the stored continuous matrix, one-hot matrix
// and labels.
func (s *GaussianMixture) LoadAll() *Batch {
	all := &Batch{Continuous: s.xc, Discrete: s.xd, Labels: s.labels}
	return all.Clone()
}

// Means returns a copy of the component means.
func (s *GaussianMixture) Means() [][]float64 {
	out := make([][]float64, len(s.means))
	for i, mu := range s.means {
		out[i] = append([]float64(nil), mu...)
	}
	return out
}

// Placement reports how the means were laid out.
func (s *GaussianMixture) Placement() Placement { return s.placement }

// Config returns the effective configuration, with defaults applied.
func (s *GaussianMixture) Config() MixtureConfig { return s.cfg }
