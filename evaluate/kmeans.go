package evaluate

import (
	"github.com/biogo/cluster/kmeans"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Noofbiz/latent/latent"
)

// Clusterer is the clustering estimator the gap statistic drives. Its
// cluster count is changed in place between fits, so one Clusterer must not
// be shared by concurrent evaluations.
type Clusterer interface {
	SetClusterCount(k int)
	FitPredict(X mat.Matrix) ([]int, error)
}

// KMeans implements Clusterer using the standard k-means algorithm from
// biogo. K: # of clusters to be found.
type KMeans struct {
	K int
}

var _ Clusterer = (*KMeans)(nil)

// NewKMeans returns a KMeans looking for k clusters.
func NewKMeans(k int) (*KMeans, error) {
	if k <= 0 {
		return nil, errors.Wrapf(latent.ErrInvalidConfiguration, "k must be > 0 to instantiate a KMeans, got %d", k)
	}
	return &KMeans{K: k}, nil
}

// SetClusterCount implements Clusterer.
func (km *KMeans) SetClusterCount(k int) { km.K = k }

// FitPredict clusters the rows of X and returns the cluster index of every
// row. Clusters left empty by the algorithm are dropped, so fewer than K
// distinct labels can come back.
func (km *KMeans) FitPredict(X mat.Matrix) ([]int, error) {
	if km.K <= 0 {
		return nil, errors.Wrapf(latent.ErrInvalidConfiguration, "k must be > 0, got %d", km.K)
	}
	data := newRows(X)
	if data.Len() == 0 {
		return nil, errors.Wrap(latent.ErrInvalidConfiguration, "cannot cluster an empty matrix")
	}
	trainer, err := kmeans.New(data)
	if err != nil {
		return nil, errors.Wrap(err, "instantiating kmeans")
	}
	trainer.Seed(min(km.K, data.Len()))
	trainer.Cluster()

	assignment := make([]int, data.Len())
	for c, center := range trainer.Centers() {
		for _, i := range center.Members() {
			assignment[i] = c
		}
	}
	return assignment, nil
}

// rows exposes a matrix through the Len/Values interface biogo expects.
type rows [][]float64

func newRows(X mat.Matrix) rows {
	r, _ := X.Dims()
	out := make(rows, r)
	for i := range out {
		out[i] = mat.Row(nil, i, X)
	}
	return out
}

// Len returns the # of data points in the set.
func (rs rows) Len() int { return len(rs) }

// Values is needed for using the "github.com/biogo/cluster/kmeans" library.
func (rs rows) Values(i int) []float64 { return rs[i] }
