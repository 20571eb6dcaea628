// Package evaluate scores clusterings of an embedding: within-cluster
// inertia and the gap statistic used to pick the number of clusters.
package evaluate

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/Noofbiz/latent/latent"
)

// Defaults used by ComputeGap callers that have no preference.
const (
	DefaultKMax        = 10
	DefaultNReferences = 100
)

// EmptyClusterWarning records a fit that produced fewer non-empty clusters
// than requested. It is informational: the missing clusters contribute 0 to
// the inertia.
type EmptyClusterWarning struct {
	K         int
	Reference bool // true for a reference-dataset fit, false for the data fit
	Got       int  // number of distinct labels returned
}

// ZeroInertiaWarning records a fit whose inertia is 0, which happens when
// every cluster holds identical points. Its log-inertia is -Inf, so a zero
// data fit makes the gap +Inf.
type ZeroInertiaWarning struct {
	K         int
	Reference bool
}

// GapResult holds one entry per k in [2, kMax].
type GapResult struct {
	K                   []int
	Gap                 []float64
	LogReferenceInertia []float64
	LogDataInertia      []float64
	Warnings            []EmptyClusterWarning
	ZeroInertia         []ZeroInertiaWarning
}

// BestK returns the k with the largest finite gap, or 0 when no gap is
// finite.
func (r *GapResult) BestK() int {
	if r == nil {
		return 0
	}
	var finite []float64
	var ks []int
	for i, g := range r.Gap {
		if !math.IsInf(g, 0) && !math.IsNaN(g) {
			finite = append(finite, g)
			ks = append(ks, r.K[i])
		}
	}
	best, err := stats.Max(finite)
	if err != nil {
		return 0
	}
	for i, g := range finite {
		if g == best {
			return ks[i]
		}
	}
	return 0
}

// Evaluator computes the gap statistic. The zero value is not usable; use
// NewEvaluator.
type Evaluator struct {
	eng    *latent.Engine
	logger *zap.Logger
}

// NewEvaluator returns an Evaluator drawing reference datasets from a
// sub-stream of eng. A nil logger disables logging.
func NewEvaluator(eng *latent.Engine, logger *zap.Logger) (*Evaluator, error) {
	if eng == nil {
		return nil, errors.Wrap(latent.ErrInvalidConfiguration, "nil engine")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{eng: eng.Derive(), logger: logger}, nil
}

// ComputeGap runs the gap statistic for k = 2..kMax.
//
// For each k, nReferences datasets of the shape of data are drawn uniformly
// inside the per-feature [min, max] box of data, clustered at k, and their
// log-inertia averaged. data itself is clustered once at k. The gap is the
// mean reference log-inertia minus the data log-inertia.
//
// The cluster count of clusterer is overwritten on every fit.
func (e *Evaluator) ComputeGap(clusterer Clusterer, data mat.Matrix, kMax, nReferences int) (*GapResult, error) {
	if clusterer == nil {
		return nil, errors.Wrap(latent.ErrInvalidConfiguration, "nil clusterer")
	}
	if kMax < 2 {
		return nil, errors.Wrapf(latent.ErrInvalidConfiguration, "k_max must be >= 2, got %d", kMax)
	}
	if nReferences < 1 {
		return nil, errors.Wrapf(latent.ErrInvalidConfiguration, "n_references must be >= 1, got %d", nReferences)
	}
	rows, cols := data.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrapf(latent.ErrInvalidConfiguration, "empty data matrix %dx%d", rows, cols)
	}

	box := distmv.NewUniform(featureBounds(data), e.eng.Source())
	res := &GapResult{}
	for k := 2; k <= kMax; k++ {
		logRef := make([]float64, nReferences)
		for r := range logRef {
			ref := latent.NewMatrix(rows, cols, nil)
			for i := 0; i < rows; i++ {
				box.Rand(ref.Row(i))
			}
			inertia, err := e.fitInertia(clusterer, ref, k, true, res)
			if err != nil {
				return nil, errors.Wrapf(err, "reference %d at k=%d", r, k)
			}
			logRef[r] = math.Log(inertia)
		}
		meanRef, err := stats.Mean(logRef)
		if err != nil {
			return nil, errors.Wrapf(err, "averaging reference inertia at k=%d", k)
		}

		inertia, err := e.fitInertia(clusterer, data, k, false, res)
		if err != nil {
			return nil, errors.Wrapf(err, "data at k=%d", k)
		}
		logData := math.Log(inertia)

		res.K = append(res.K, k)
		res.LogReferenceInertia = append(res.LogReferenceInertia, meanRef)
		res.LogDataInertia = append(res.LogDataInertia, logData)
		res.Gap = append(res.Gap, meanRef-logData)
		e.logger.Debug("gap statistic",
			zap.Int("k", k),
			zap.Float64("log_reference_inertia", meanRef),
			zap.Float64("log_data_inertia", logData),
			zap.Float64("gap", meanRef-logData))
	}
	return res, nil
}

func (e *Evaluator) fitInertia(c Clusterer, X mat.Matrix, k int, reference bool, res *GapResult) (float64, error) {
	c.SetClusterCount(k)
	assignment, err := c.FitPredict(X)
	if err != nil {
		return 0, err
	}
	if got := distinct(assignment); got < k {
		w := EmptyClusterWarning{K: k, Reference: reference, Got: got}
		res.Warnings = append(res.Warnings, w)
		e.logger.Warn("empty clusters",
			zap.Int("k", k),
			zap.Int("non_empty", got),
			zap.Bool("reference", reference))
	}
	inertia, err := ComputeInertia(assignment, X, true)
	if err != nil {
		return 0, err
	}
	if inertia == 0 {
		res.ZeroInertia = append(res.ZeroInertia, ZeroInertiaWarning{K: k, Reference: reference})
		e.logger.Warn("zero inertia",
			zap.Int("k", k),
			zap.Bool("reference", reference))
	}
	return inertia, nil
}

// featureBounds returns the per-column [min, max] of X.
func featureBounds(X mat.Matrix) []r1.Interval {
	rows, cols := X.Dims()
	bounds := make([]r1.Interval, cols)
	for j := range bounds {
		bounds[j] = r1.Interval{Min: math.Inf(1), Max: math.Inf(-1)}
		for i := 0; i < rows; i++ {
			v := X.At(i, j)
			bounds[j].Min = math.Min(bounds[j].Min, v)
			bounds[j].Max = math.Max(bounds[j].Max, v)
		}
	}
	return bounds
}

func distinct(assignment []int) int {
	seen := make(map[int]struct{}, len(assignment))
	for _, c := range assignment {
		seen[c] = struct{}{}
	}
	return len(seen)
}
