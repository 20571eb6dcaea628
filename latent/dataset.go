package latent

import (
	"fmt"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// Pusher routes a tuple of batch components through a history buffer. It
// is satisfied by *pool.Pool[*latent.Matrix].
type Pusher interface {
	Push(batch []*Matrix) ([]*Matrix, error)
}

// Dataset adapts a Sampler to gomlx's train.Dataset interface so a training
// loop can pull latent batches directly as tensors.
type Dataset struct {
	Sampler Sampler

	// BatchSize for yielding batches.
	BatchSize int

	// Pool, when set, receives the (continuous[, discrete]) components of
	// every batch before they are converted.
	Pool Pusher

	name string
}

// NewDataset returns a Dataset yielding batchSize rows per step.
func NewDataset(name string, s Sampler, batchSize int) (*Dataset, error) {
	if s == nil {
		return nil, invalidf("nil sampler")
	}
	if batchSize < 1 {
		return nil, invalidf("batch size must be >= 1, got %d", batchSize)
	}
	return &Dataset{Sampler: s, BatchSize: batchSize, name: name}, nil
}

// Name returns the name of the dataset.
func (d *Dataset) Name() string {
	if d.name == "" {
		return fmt.Sprintf("latent-%T", d.Sampler)
	}
	return d.name
}

// Next draws one batch, routing it through the pool when one is set.
// Labels are drawn when the sampler is a LabelledSampler and survive the
// pool only when it hands the batch back unchanged.
func (d *Dataset) Next() (*Batch, error) {
	b, err := d.draw()
	if err != nil {
		return nil, err
	}
	if d.Pool == nil {
		return b, nil
	}
	out, err := d.Pool.Push(b.Components())
	if err != nil {
		return nil, err
	}
	mixed := &Batch{Labels: b.Labels}
	if len(out) > 0 {
		mixed.Continuous = out[0]
	}
	if len(out) > 1 {
		mixed.Discrete = out[1]
	}
	if !sameSlice(out, b.Components()) {
		// Replayed components no longer line up with the labels of this draw.
		mixed.Labels = nil
	}
	return mixed, nil
}

func (d *Dataset) draw() (*Batch, error) {
	if ls, ok := d.Sampler.(LabelledSampler); ok {
		return ls.TrainWithLabels(d.BatchSize)
	}
	return d.Sampler.Train(d.BatchSize)
}

// Yield returns the next batch for the gomlx Dataset interface.
func (d *Dataset) Yield() (spec any, inputs []*tensors.Tensor, labels []*tensors.Tensor, err error) {
	b, err := d.Next()
	if err != nil {
		return nil, nil, nil, err
	}
	inputs, labels, err = b.ToGomlxTensors()
	if err != nil {
		return nil, nil, nil, err
	}
	return nil, inputs, labels, nil
}

// Reset is a no-op: samplers are infinite streams.
func (d *Dataset) Reset() {}

func sameSlice(a, b []*Matrix) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
