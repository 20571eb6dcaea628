// Package datasets loads the precomputed inputs of the latent samplers from
// delimited text files.
//
// Building the feature matrix itself (count-matrix parsing, TF-IDF,
// library-size normalisation, PCA) happens upstream; this package only reads
// its result:
//
//   - LoadMatrix reads an (N, D) numeric matrix, one cell per row, optionally
//     with a header line and a leading index column (the layout pandas writes
//     with to_csv).
//   - LoadLabels reads one label string per line and maps the labels to
//     integer ids in sorted order.
//   - WriteBatchCSV writes a sampled batch back out for inspection.
package datasets

// MatrixOptions controls how LoadMatrix parses a file.
type MatrixOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// Header skips the first line.
	Header bool

	// IndexColumn drops the first field of every row.
	IndexColumn bool
}

// TSV is the layout of a tab separated matrix with a header and index column.
var TSV = MatrixOptions{Comma: '\t', Header: true, IndexColumn: true}
