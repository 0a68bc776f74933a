package colorcluster

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/yyyoichi/colorcluster/palette"
)

type Option func(*Clusterer) error

// WithSeed sets the seed of the k-means++ random stream.
// The default is kmeans.DefaultSeed, so runs are reproducible out of the box.
func WithSeed(seed uint64) Option {
	return func(c *Clusterer) error {
		c.seed = seed
		return nil
	}
}

// WithRandSource draws seeding randomness from src instead of a per-call
// stream. A Clusterer using it must not be shared between goroutines.
func WithRandSource(src rand.Source) Option {
	return func(c *Clusterer) error {
		if src == nil {
			return errors.New("colorcluster: nil rand source")
		}
		c.src = src
		return nil
	}
}

// WithMaxIterations caps the number of iterations. Reaching the cap returns
// the last state with Result.Converged false.
func WithMaxIterations(n int) Option {
	return func(c *Clusterer) error {
		if n < 1 {
			return fmt.Errorf("colorcluster: max iterations must be positive, got %d", n)
		}
		c.maxIter = n
		return nil
	}
}

// WithEpsilon stops iterating once the inertia moves by at most eps.
// It implies ConvergeEpsilon.
func WithEpsilon(eps float64) Option {
	return func(c *Clusterer) error {
		if eps < 0 || math.IsNaN(eps) {
			return fmt.Errorf("colorcluster: invalid epsilon %v", eps)
		}
		c.epsilon = eps
		c.convergence = ConvergeEpsilon
		return nil
	}
}

func WithConvergence(conv Convergence) Option {
	return func(c *Clusterer) error {
		switch conv {
		case ConvergeExact, ConvergeEpsilon, ConvergeAssignments:
		default:
			return fmt.Errorf("colorcluster: unknown convergence %v", conv)
		}
		c.convergence = conv
		return nil
	}
}

// WithWorkers bounds the goroutines used by the assignment step.
// 1 runs inline; 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Clusterer) error {
		if n < 0 {
			return fmt.Errorf("colorcluster: invalid worker count %d", n)
		}
		c.workers = n
		return nil
	}
}

// WithLogger sets the logger for iteration progress and warnings.
// By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *Clusterer) error {
		c.logger = l
		return nil
	}
}

// WithTrace records the inertia of every iteration in Result.Trace.
func WithTrace() Option {
	return func(c *Clusterer) error {
		c.trace = true
		return nil
	}
}

// WithInitialCentroids skips k-means++ and starts from the given centroids.
// Their count must equal k and their dimension that of the data.
func WithInitialCentroids(centroids []Point) Option {
	return func(c *Clusterer) error {
		if len(centroids) == 0 {
			return fmt.Errorf("%w: no initial centroids", ErrInvalidClusterCount)
		}
		c.initial = make([]Point, len(centroids))
		for i, p := range centroids {
			c.initial[i] = p.Clone()
		}
		return nil
	}
}

// WithColorSpace selects the space pixels are clustered in. The default is RGB.
func WithColorSpace(s Space) Option {
	return func(c *Clusterer) error {
		if !s.Valid() {
			return fmt.Errorf("colorcluster: unknown color space %v", s)
		}
		c.space = s
		return nil
	}
}

// WithPalette paints every cluster of a quantized image with its nearest
// palette color instead of the cluster color.
func WithPalette(p palette.Palette) Option {
	return func(c *Clusterer) error {
		if p.Len() == 0 {
			return palette.ErrEmptyPalette
		}
		c.palette = &p
		return nil
	}
}

// WithDistinctPalette is WithPalette, but clusters get pairwise different
// palette colors while the palette has unused entries.
func WithDistinctPalette(p palette.Palette) Option {
	return func(c *Clusterer) error {
		if err := WithPalette(p)(c); err != nil {
			return err
		}
		c.distinct = true
		return nil
	}
}

// WithMaxSide fits the clusters on a copy of the image scaled so that its
// longer side is at most n pixels, then labels the full image in one pass.
// 0 disables scaling.
func WithMaxSide(n int) Option {
	return func(c *Clusterer) error {
		if n < 0 {
			return fmt.Errorf("colorcluster: invalid max side %d", n)
		}
		c.maxSide = n
		return nil
	}
}
