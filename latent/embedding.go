package latent

import "gonum.org/v1/gonum/mat"

// EmbeddingConfig describes optional labels attached to an embedding.
type EmbeddingConfig struct {
	// Labels holds one class id per row, or nil for unlabelled data.
	Labels []int
	// NumClasses is the number of classes. Zero means max(Labels)+1.
	NumClasses int
}

// Embedding serves empirical batches from a precomputed (N, D) feature
// matrix, typically the reduced-dimension embedding of a single-cell dataset.
type Embedding struct {
	eng        *Engine
	x          *Matrix
	labels     []int
	onehot     *Matrix
	numClasses int
	byLabel    [][]int
}

var _ Sampler = (*Embedding)(nil)

// NewEmbedding copies x and validates the optional labels.
func NewEmbedding(eng *Engine, x mat.Matrix, cfg EmbeddingConfig) (*Embedding, error) {
	if eng == nil {
		return nil, invalidf("nil engine")
	}
	if x == nil {
		return nil, invalidf("nil feature matrix")
	}
	s := &Embedding{eng: eng.Derive(), x: CopyOf(x)}
	if cfg.Labels == nil {
		return s, nil
	}
	if len(cfg.Labels) != s.x.rows {
		return nil, mismatchf("%d labels for %d rows", len(cfg.Labels), s.x.rows)
	}
	k := cfg.NumClasses
	if k == 0 {
		for _, l := range cfg.Labels {
			k = max(k, l+1)
		}
	}
	if k < 1 {
		return nil, invalidf("num_classes must be >= 1, got %d", k)
	}
	for i, l := range cfg.Labels {
		if l < 0 || l >= k {
			return nil, invalidf("label %d of row %d outside [0, %d)", l, i, k)
		}
	}
	s.labels = append([]int(nil), cfg.Labels...)
	s.numClasses = k
	s.onehot = OneHot(s.labels, k)
	s.byLabel = labelIndex(s.labels, k)
	return s, nil
}

// Train samples batchSize rows uniformly with replacement. Labelled
// embeddings also return the labels and their one-hot encoding.
func (s *Embedding) Train(batchSize int) (*Batch, error) {
	if err := checkBatchSize(batchSize); err != nil {
		return nil, err
	}
	if batchSize > 0 && s.x.rows == 0 {
		return nil, invalidf("cannot sample from an empty embedding")
	}
	return s.rows(drawIndices(s.eng, s.x.rows, batchSize)), nil
}

// GetBatch with nil weights is Train. Otherwise it draws labels from weights
// and, for each, a stored row of that class uniformly.
func (s *Embedding) GetBatch(batchSize int, weights []float64) (*Batch, error) {
	if weights == nil {
		return s.Train(batchSize)
	}
	if err := checkBatchSize(batchSize); err != nil {
		return nil, err
	}
	if s.labels == nil {
		return nil, invalidf("class weights given for an unlabelled embedding")
	}
	w, err := normalizeWeights(weights, s.numClasses)
	if err != nil {
		return nil, err
	}
	for c, rows := range s.byLabel {
		if w[c] > 0 && len(rows) == 0 {
			return nil, invalidf("class %d has weight %v but no rows", c, w[c])
		}
	}
	labels := drawLabels(s.eng, w, batchSize)
	idx := make([]int, batchSize)
	for i, l := range labels {
		rows := s.byLabel[l]
		idx[i] = rows[s.eng.IntN(len(rows))]
	}
	return s.rows(idx), nil
}

func (s *Embedding) rows(idx []int) *Batch {
	b := &Batch{Continuous: s.x.Gather(idx)}
	if s.labels != nil {
		b.Discrete = s.onehot.Gather(idx)
		b.Labels = make([]int, len(idx))
		for i, j := range idx {
			b.Labels[i] = s.labels[j]
		}
	}
	return b
}

// LoadAll returns a copy of the full embedding, with labels when present.
func (s *Embedding) LoadAll() *Batch {
	all := &Batch{Continuous: s.x, Discrete: s.onehot, Labels: s.labels}
	return all.Clone()
}

// Dims returns the number of rows and the embedding dimension.
func (s *Embedding) Dims() (int, int) { return s.x.Dims() }

// NumClasses returns the number of label classes, zero when unlabelled.
func (s *Embedding) NumClasses() int { return s.numClasses }
