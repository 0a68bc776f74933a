// Package colorcluster groups colors into k clusters with k-means and maps
// images onto the resulting colors.
package colorcluster

import (
	"context"
	"image"
	"log/slog"
	"math/rand/v2"

	"github.com/yyyoichi/colorcluster/internal/colorspace"
	"github.com/yyyoichi/colorcluster/internal/kmeans"
	"github.com/yyyoichi/colorcluster/palette"
)

// Cluster groups data into k clusters with the specified options.
// This is a convenience function that creates a Clusterer and calls its Cluster method.
func Cluster(ctx context.Context, data []Point, k int, opts ...Option) (*Result, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.Cluster(ctx, data, k)
}

// Quantize reduces img to k colors with the specified options.
// This is a convenience function that creates a Clusterer and calls its Quantize method.
func Quantize(ctx context.Context, img image.Image, k int, opts ...Option) (*Quantized, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.Quantize(ctx, img, k)
}

// Clusterer holds clustering settings. It can be reused; each call seeds a
// fresh random stream from the configured seed, so calls may run
// concurrently unless WithRandSource supplied a shared source.
type Clusterer struct {
	seed        uint64
	src         rand.Source
	maxIter     int
	convergence Convergence
	epsilon     float64
	workers     int
	logger      *slog.Logger
	trace       bool
	initial     []Point

	space    colorspace.Space
	palette  *palette.Palette
	distinct bool
	maxSide  int
}

// New initializes a Clusterer.
// For default values, refer to the init function.
func New(opts ...Option) (*Clusterer, error) {
	c := new(Clusterer)
	if err := c.init(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// Cluster runs k-means over data.
//
// Process:
//  1. Validates data (non-empty, one dimension, finite values) and k.
//  2. Seeds k centroids with k-means++ unless initial centroids were given.
//  3. Alternates assignment and update until the convergence policy holds
//     or the iteration cap is reached.
//
// data is never modified. Errors wrap the package sentinels.
func (c *Clusterer) Cluster(ctx context.Context, data []Point, k int) (*Result, error) {
	return kmeans.Fit(ctx, data, k, c.config())
}

func (c *Clusterer) config() kmeans.Config {
	src := c.src
	if src == nil {
		src = kmeans.NewSource(c.seed)
	}
	return kmeans.Config{
		MaxIterations:    c.maxIter,
		Convergence:      c.convergence,
		Epsilon:          c.epsilon,
		Workers:          c.workers,
		Source:           src,
		Logger:           c.logger,
		Trace:            c.trace,
		InitialCentroids: c.initial,
	}
}

func (c *Clusterer) init(opts ...Option) error {
	c.seed = kmeans.DefaultSeed
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	if c.maxIter == 0 {
		c.maxIter = kmeans.DefaultMaxIterations
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return nil
}
