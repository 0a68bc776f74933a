package kmeans

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Assignment maps the point at Index in the dataset to the centroid at Cluster.
type Assignment struct {
	Index   int
	Cluster int
}

const (
	minGrain = 1 << 10
	maxGrain = 1 << 16
)

// grainSize returns the number of points handed to one worker at a time.
func grainSize(n, workers int) int {
	per := n / workers
	if per < minGrain {
		return minGrain
	}
	if per > maxGrain {
		return maxGrain
	}
	return per
}

// Nearest returns the index of the centroid closest to p and the squared
// distance to it. Ties keep the lowest index.
func Nearest(p Point, centroids []Point) (int, float64) {
	best := 0
	bestDist := SquaredDistance(p, centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := SquaredDistance(p, centroids[j]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, bestDist
}

// Assign returns one Assignment per point, in dataset order, mapping each
// point to its nearest centroid.
//
// With workers > 1 the dataset is split into chunks that are labelled
// concurrently. Workers only read data and centroids and write disjoint
// ranges of the result; Assign returns after all of them finished.
// workers <= 0 means runtime.GOMAXPROCS(0).
func Assign(ctx context.Context, data, centroids []Point, workers int) ([]Assignment, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("%w: no centroids", ErrInvalidClusterCount)
	}
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]Assignment, len(data))
	if workers == 1 || len(data) <= minGrain {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		assignRange(data, centroids, out, 0, len(data))
		return out, nil
	}

	grain := grainSize(len(data), workers)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(data); start += grain {
		end := min(start+grain, len(data))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			assignRange(data, centroids, out, start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func assignRange(data, centroids []Point, out []Assignment, start, end int) {
	for i := start; i < end; i++ {
		c, _ := Nearest(data[i], centroids)
		out[i] = Assignment{Index: i, Cluster: c}
	}
}

// changed counts the assignments whose cluster differs between prev and next.
// A nil prev counts every assignment as changed.
func changed(prev, next []Assignment) int {
	if len(prev) != len(next) {
		return len(next)
	}
	n := 0
	for i := range next {
		if prev[i].Cluster != next[i].Cluster {
			n++
		}
	}
	return n
}
