package kmeans

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Point is a fixed-dimension vector of float64 channels.
// The dimension is fixed for the duration of a run.
type Point []float64

func (p Point) Dim() int { return len(p) }

func (p Point) Clone() Point { return slices.Clone(p) }

func (p Point) Equal(q Point) bool { return floats.Equal(p, q) }

// SquaredDistance returns the sum over all channels of (a[i]-b[i])^2.
// Both points must have the same dimension.
func SquaredDistance(a, b Point) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Add adds p into the accumulator acc component-wise and returns acc.
// p is not modified.
func Add(acc, p Point) Point {
	floats.Add(acc, p)
	return acc
}

// magnitudeLimit is the largest channel magnitude for which the inertia of n
// points of dimension dim, and every running sum, stays finite:
// n * dim * (2*limit)^2 <= MaxFloat64.
func magnitudeLimit(n, dim int) float64 {
	return math.Sqrt(math.MaxFloat64 / (4 * float64(dim) * float64(n)))
}

// ValidateDataset checks that data is non-empty, that every point shares the
// dimension of the first one and that every channel is finite and small
// enough for squared distances and sums to stay finite.
// It returns the common dimension.
func ValidateDataset(data []Point) (int, error) {
	if len(data) == 0 {
		return 0, ErrEmptyDataset
	}
	dim := len(data[0])
	if dim == 0 {
		return 0, fmt.Errorf("%w: point 0 has no channels", ErrDimensionMismatch)
	}
	limit := magnitudeLimit(len(data), dim)
	for i, p := range data {
		if len(p) != dim {
			return 0, fmt.Errorf("%w: point %d has dimension %d, want %d", ErrDimensionMismatch, i, len(p), dim)
		}
		if !finite(p) {
			return 0, fmt.Errorf("%w: point %d", ErrNonFinite, i)
		}
		if m := floats.Norm(p, math.Inf(1)); m > limit {
			return 0, fmt.Errorf("%w: point %d has magnitude %g, limit %g", ErrNonFinite, i, m, limit)
		}
	}
	return dim, nil
}

func finite(p Point) bool {
	if floats.HasNaN(p) {
		return false
	}
	for _, v := range p {
		if math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
