package latent

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler is the shape contract a training loop depends on. Every sampler
// variant in this package implements it.
type Sampler interface {
	// Train returns a batch of batchSize rows.
	Train(batchSize int) (*Batch, error)
	// GetBatch returns a batch whose classes follow weights (nil means
	// uniform over the sampler's classes).
	GetBatch(batchSize int, weights []float64) (*Batch, error)
	// LoadAll returns a copy of the full stored dataset.
	LoadAll() *Batch
}

// LabelledSampler is a Sampler that can also return the integer labels of
// the rows Train draws.
type LabelledSampler interface {
	Sampler
	TrainWithLabels(batchSize int) (*Batch, error)
}

// weightTolerance bounds how far class weights may sum away from 1.
const weightTolerance = 1e-6

// normalizeWeights validates weights against numClasses and returns them,
// or a uniform vector when weights is nil.
func normalizeWeights(weights []float64, numClasses int) ([]float64, error) {
	if weights == nil {
		w := make([]float64, numClasses)
		for i := range w {
			w[i] = 1 / float64(numClasses)
		}
		return w, nil
	}
	if len(weights) != numClasses {
		return nil, invalidf("got %d class weights for %d classes", len(weights), numClasses)
	}
	var sum float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, invalidf("class weight %d is %v", i, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightTolerance {
		return nil, invalidf("class weights sum to %v, want 1", sum)
	}
	out := make([]float64, numClasses)
	copy(out, weights)
	return out, nil
}

// drawLabels draws n class labels i.i.d. from the categorical law weights.
func drawLabels(e *Engine, weights []float64, n int) []int {
	cat := distuv.NewCategorical(weights, e.Source())
	labels := make([]int, n)
	for i := range labels {
		labels[i] = int(cat.Rand())
	}
	return labels
}

// drawIndices draws n row indices uniformly from [0, total) with replacement.
func drawIndices(e *Engine, total, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = e.IntN(total)
	}
	return idx
}

func checkBatchSize(batchSize int) error {
	if batchSize < 0 {
		return invalidf("batch size must be >= 0, got %d", batchSize)
	}
	return nil
}

// labelIndex groups row indices by label.
func labelIndex(labels []int, numClasses int) [][]int {
	byLabel := make([][]int, numClasses)
	for i, l := range labels {
		byLabel[l] = append(byLabel[l], i)
	}
	return byLabel
}
