package datasets

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/Noofbiz/latent/latent"
)

// LoadMatrix reads a delimited numeric matrix from path.
func LoadMatrix(path string, opts MatrixOptions) (*latent.Matrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open matrix")
	}
	defer file.Close()

	m, err := ReadMatrix(file, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return m, nil
}

// ReadMatrix reads a delimited numeric matrix from r.
func ReadMatrix(r io.Reader, opts MatrixOptions) (*latent.Matrix, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	// Headers with an index column are one field shorter than data rows.
	reader.FieldsPerRecord = -1

	if opts.Header {
		if _, err := reader.Read(); err != nil {
			return nil, errors.Wrap(err, "failed to read header")
		}
	}

	var data []float64
	cols := -1
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read row %d", rows)
		}
		if opts.IndexColumn {
			if len(record) == 0 {
				return nil, errors.Errorf("row %d has no index column", rows)
			}
			record = record[1:]
		}
		if cols < 0 {
			cols = len(record)
		} else if len(record) != cols {
			return nil, errors.Wrapf(latent.ErrDimensionMismatch, "row %d has %d fields, expected %d", rows, len(record), cols)
		}
		for j, field := range record {
			v, err := parseFloat64(field)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse row %d column %d", rows, j)
			}
			data = append(data, v)
		}
		rows++
	}
	if cols < 0 {
		cols = 0
	}
	return latent.NewMatrix(rows, cols, data), nil
}
