package datasets

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Noofbiz/latent/latent"
)

// WriteBatchCSV writes the continuous part of b to path, one row per draw,
// with a trailing "label" column when the batch carries labels.
func WriteBatchCSV(path string, b *latent.Batch) error {
	if b == nil || b.Continuous == nil {
		return errors.New("batch has no continuous part")
	}
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create csv")
	}
	defer file.Close()

	w := csv.NewWriter(file)
	rows, cols := b.Continuous.Dims()
	header := make([]string, 0, cols+1)
	for j := 0; j < cols; j++ {
		header = append(header, fmt.Sprintf("z%d", j))
	}
	if b.Labels != nil {
		header = append(header, "label")
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	record := make([]string, len(header))
	for i := 0; i < rows; i++ {
		for j, v := range b.Continuous.Row(i) {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if b.Labels != nil {
			record[cols] = strconv.Itoa(b.Labels[i])
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "failed to flush csv")
	}
	return file.Close()
}
