package latent

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense row-major float64 matrix. It satisfies gonum's mat.Matrix
// so it can be handed to anything in the gonum ecosystem, but unlike
// mat.Dense it admits zero rows: an empty dataset or an empty batch is a
// valid value.
type Matrix struct {
	rows, cols int
	data       []float64
}

var _ mat.Matrix = (*Matrix)(nil)

// NewMatrix allocates a zeroed rows x cols matrix. If data is non-nil it is
// used as the backing store and must have length rows*cols.
func NewMatrix(rows, cols int, data []float64) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("latent: negative matrix shape %dx%d", rows, cols))
	}
	if data == nil {
		data = make([]float64, rows*cols)
	} else if len(data) != rows*cols {
		panic(fmt.Sprintf("latent: data length %d does not match shape %dx%d", len(data), rows, cols))
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// CopyOf returns a Matrix holding a copy of m.
func CopyOf(m mat.Matrix) *Matrix {
	if lm, ok := m.(*Matrix); ok {
		return lm.Clone()
	}
	r, c := m.Dims()
	out := NewMatrix(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.data[i*c+j] = m.At(i, j)
		}
	}
	return out
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// At returns element (i, j).
func (m *Matrix) At(i, j int) float64 {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set sets element (i, j).
func (m *Matrix) Set(i, j int, v float64) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

// T returns the implicit transpose of m.
func (m *Matrix) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// Row returns row i as a slice sharing m's storage.
func (m *Matrix) Row(i int) []float64 {
	if i < 0 || i >= m.rows {
		panic(mat.ErrRowAccess)
	}
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

// RawData returns the row-major backing slice.
func (m *Matrix) RawData() []float64 { return m.data }

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// Gather returns a new matrix made of the given rows of m, in order.
func (m *Matrix) Gather(rows []int) *Matrix {
	out := NewMatrix(len(rows), m.cols, nil)
	for k, i := range rows {
		copy(out.Row(k), m.Row(i))
	}
	return out
}

func (m *Matrix) check(i, j int) {
	if i < 0 || i >= m.rows {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.cols {
		panic(mat.ErrColAccess)
	}
}

// OneHot encodes labels as rows of a len(labels) x numClasses matrix.
func OneHot(labels []int, numClasses int) *Matrix {
	out := NewMatrix(len(labels), numClasses, nil)
	for i, l := range labels {
		out.data[i*numClasses+l] = 1
	}
	return out
}

// HStack concatenates matrices with the same number of rows side by side.
func HStack(ms ...mat.Matrix) (*Matrix, error) {
	if len(ms) == 0 {
		return NewMatrix(0, 0, nil), nil
	}
	rows, _ := ms[0].Dims()
	cols := 0
	for i, m := range ms {
		r, c := m.Dims()
		if r != rows {
			return nil, mismatchf("hstack operand %d has %d rows, want %d", i, r, rows)
		}
		cols += c
	}
	out := NewMatrix(rows, cols, nil)
	off := 0
	for _, m := range ms {
		_, c := m.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < c; j++ {
				out.data[i*cols+off+j] = m.At(i, j)
			}
		}
		off += c
	}
	return out, nil
}
