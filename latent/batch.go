package latent

import (
	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// Batch is one draw of latent variables.
//
// Continuous holds one row per draw. Discrete holds one-hot rows and can be
// nil for unlabelled empirical data. Labels holds the integer class of each
// Discrete row when the caller asked for it (or when the sampler produces it
// as a by-product); otherwise it is nil.
//
// Whether Continuous and Discrete rows are aligned depends on the sampler:
// GaussianCategorical draws them independently, every other sampler returns
// joint rows.
type Batch struct {
	Continuous *Matrix
	Discrete   *Matrix
	Labels     []int
}

// Size returns the number of rows in the batch.
func (b *Batch) Size() int {
	if b == nil {
		return 0
	}
	if b.Continuous != nil {
		return b.Continuous.rows
	}
	if b.Discrete != nil {
		return b.Discrete.rows
	}
	return len(b.Labels)
}

// Clone returns a deep copy of b.
func (b *Batch) Clone() *Batch {
	if b == nil {
		return nil
	}
	out := &Batch{}
	if b.Continuous != nil {
		out.Continuous = b.Continuous.Clone()
	}
	if b.Discrete != nil {
		out.Discrete = b.Discrete.Clone()
	}
	if b.Labels != nil {
		out.Labels = append([]int(nil), b.Labels...)
	}
	return out
}

// Components returns the non-nil matrices of the batch in a fixed order
// (continuous, discrete), the tuple shape a ReplayPool stores.
func (b *Batch) Components() []*Matrix {
	out := make([]*Matrix, 0, 2)
	if b.Continuous != nil {
		out = append(out, b.Continuous)
	}
	if b.Discrete != nil {
		out = append(out, b.Discrete)
	}
	return out
}

// ToGomlxTensors converts the batch into gomlx tensors. Inputs carry the
// continuous part followed by the discrete part (when present); labels carry
// an int32 vector when Labels is set.
func (b *Batch) ToGomlxTensors() (inputs []*tensors.Tensor, labels []*tensors.Tensor, err error) {
	if b == nil {
		return nil, nil, invalidf("nil batch")
	}
	for _, m := range b.Components() {
		inputs = append(inputs, matrixTensor(m))
	}
	if b.Labels != nil {
		ls := make([]int32, len(b.Labels))
		for i, l := range b.Labels {
			ls[i] = int32(l)
		}
		labels = append(labels, tensors.FromAnyValue(ls))
	}
	return inputs, labels, nil
}

// matrixTensor converts m into a [rows][cols] float32 tensor.
func matrixTensor(m *Matrix) *tensors.Tensor {
	rows := make([][]float32, m.rows)
	for i := range m.rows {
		row := make([]float32, m.cols)
		for j, v := range m.Row(i) {
			row[j] = float32(v)
		}
		rows[i] = row
	}
	return tensors.FromAnyValue(rows)
}
