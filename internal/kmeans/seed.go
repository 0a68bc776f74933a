package kmeans

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// DefaultSeed seeds the random source when none is configured.
const DefaultSeed uint64 = 1234567890

// NewSource returns the PCG source used for a given seed.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

// Seed chooses k initial centroids from data with k-means++.
//
// The first centroid is a uniformly random point. Every further centroid is
// sampled with probability proportional to the squared distance from each
// point to its nearest already chosen centroid. When all those distances are
// zero (the data has fewer distinct points than k) the pick falls back to a
// uniform one, so centroids may coincide.
//
// The returned centroids are copies; data is never modified.
func Seed(data []Point, k int, src rand.Source) ([]Point, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidClusterCount, k)
	}
	if src == nil {
		src = NewSource(DefaultSeed)
	}
	rng := rand.New(src)

	centroids := make([]Point, 0, k)
	first := data[rng.IntN(len(data))].Clone()
	centroids = append(centroids, first)

	// nearest[i] is the squared distance from data[i] to its closest centroid so far.
	nearest := make([]float64, len(data))
	for i, p := range data {
		nearest[i] = SquaredDistance(p, first)
	}

	for len(centroids) < k {
		c := data[weightedPick(nearest, rng, src)].Clone()
		centroids = append(centroids, c)
		for i, p := range data {
			if d := SquaredDistance(p, c); d < nearest[i] {
				nearest[i] = d
			}
		}
	}
	return centroids, nil
}

func weightedPick(weights []float64, rng *rand.Rand, src rand.Source) int {
	w := sampleuv.NewWeighted(weights, src)
	if idx, ok := w.Take(); ok {
		return idx
	}
	return rng.IntN(len(weights))
}
