package latent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// requireOneHot checks every row of m has exactly one 1 and zeros elsewhere,
// returning the hot index of each row.
func requireOneHot(t *testing.T, m *Matrix) []int {
	t.Helper()
	rows, cols := m.Dims()
	hot := make([]int, rows)
	for i := 0; i < rows; i++ {
		ones := 0
		for j, v := range m.Row(i) {
			switch v {
			case 1:
				ones++
				hot[i] = j
			case 0:
			default:
				t.Fatalf("row %d column %d is %v, want 0 or 1", i, j, v)
			}
		}
		require.Equalf(t, 1, ones, "row %d of %d columns has %d ones", i, cols, ones)
	}
	return hot
}
