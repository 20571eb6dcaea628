package evaluate

import (
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Noofbiz/latent/latent"
)

// ComputeInertia measures within-cluster dispersion of X under assignment.
//
// For every distinct label c, D_c is the Euclidean pairwise-distance matrix
// of the rows assigned to c (both orders, zero diagonal). With normalize set
// the result is sum_c sum(D_c) / (2|c|); otherwise it is the mean over
// clusters of mean(D_c). Singleton clusters contribute 0.
func ComputeInertia(assignment []int, X mat.Matrix, normalize bool) (float64, error) {
	rows, cols := X.Dims()
	if len(assignment) != rows {
		return 0, errors.Wrapf(latent.ErrDimensionMismatch, "%d assignments for %d rows", len(assignment), rows)
	}
	if rows == 0 {
		return 0, nil
	}

	members := make(map[int][]int)
	for i, c := range assignment {
		members[c] = append(members[c], i)
	}
	labels := make([]int, 0, len(members))
	for c := range members {
		labels = append(labels, c)
	}
	slices.Sort(labels)

	points := make([][]float64, rows)
	for i := range points {
		points[i] = mat.Row(make([]float64, cols), i, X)
	}

	var total float64
	for _, c := range labels {
		idx := members[c]
		n := float64(len(idx))
		// half is the sum over unordered pairs, i.e. half of sum(D_c).
		var half float64
		for a := 0; a < len(idx); a++ {
			for b := a + 1; b < len(idx); b++ {
				half += floats.Distance(points[idx[a]], points[idx[b]], 2)
			}
		}
		if normalize {
			total += half / n
		} else {
			total += 2 * half / (n * n)
		}
	}
	if !normalize {
		total /= float64(len(labels))
	}
	return total, nil
}
