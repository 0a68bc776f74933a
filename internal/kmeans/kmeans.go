// Package kmeans clusters fixed-dimension points with Lloyd's algorithm
// seeded by k-means++.
package kmeans

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

const DefaultMaxIterations = 300

// Convergence selects when the driver loop stops iterating.
type Convergence int

const (
	// ConvergeExact stops when the inertia equals the previous iteration's bit for bit.
	ConvergeExact Convergence = iota
	// ConvergeEpsilon stops when the inertia moved by at most Config.Epsilon.
	ConvergeEpsilon
	// ConvergeAssignments stops when no point changed cluster.
	ConvergeAssignments
)

func (c Convergence) String() string {
	switch c {
	case ConvergeExact:
		return "exact"
	case ConvergeEpsilon:
		return "epsilon"
	case ConvergeAssignments:
		return "assignments"
	default:
		return fmt.Sprintf("Convergence(%d)", int(c))
	}
}

// ParseConvergence is the inverse of Convergence.String.
func ParseConvergence(s string) (Convergence, error) {
	switch s {
	case "exact":
		return ConvergeExact, nil
	case "epsilon":
		return ConvergeEpsilon, nil
	case "assignments":
		return ConvergeAssignments, nil
	}
	return 0, fmt.Errorf("kmeans: unknown convergence %q", s)
}

// Config tunes a run. The zero value is usable.
type Config struct {
	// MaxIterations caps the number of iterations. 0 means DefaultMaxIterations.
	MaxIterations int
	Convergence   Convergence
	Epsilon       float64
	// Workers bounds the goroutines of the assignment step. 0 means GOMAXPROCS.
	Workers int
	// Source drives k-means++ seeding. nil means NewSource(DefaultSeed).
	Source rand.Source
	Logger *slog.Logger
	// Trace records the inertia of every iteration in Result.Trace.
	Trace bool
	// InitialCentroids skips seeding and starts from copies of these points.
	InitialCentroids []Point
}

// State is the lifecycle position of a Run.
type State int

const (
	Uninitialized State = iota
	Seeded
	Iterating
	Converged
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Seeded:
		return "seeded"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the final state of a run.
type Result struct {
	Centroids   []Point
	Assignments []Assignment
	Inertia     float64
	Iterations  int
	Converged   bool
	// EmptyClusters counts every time a cluster received no points during an update.
	EmptyClusters int
	Trace         []float64
}

// Labels returns the cluster index of every point, in dataset order.
func (r *Result) Labels() []int {
	labels := make([]int, len(r.Assignments))
	for _, a := range r.Assignments {
		labels[a.Index] = a.Cluster
	}
	return labels
}

// Sizes returns the number of points assigned to each cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.Centroids))
	for _, a := range r.Assignments {
		sizes[a.Cluster]++
	}
	return sizes
}

// sentinel previous inertia; never equal to a real one.
const noInertia = -1.0

// Run holds the state of one clustering run over a dataset.
// It is not safe for concurrent use.
type Run struct {
	cfg    Config
	data   []Point
	dim    int
	k      int
	logger *slog.Logger

	state       State
	centroids   []Point
	assignments []Assignment
	inertia     float64
	prevInertia float64
	iterations  int
	empty       int
	trace       []float64
}

// NewRun validates data and k and returns a Run in the Uninitialized state.
// data is read but never modified.
func NewRun(data []Point, k int, cfg Config) (*Run, error) {
	dim, err := ValidateDataset(data)
	if err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidClusterCount, k)
	}
	if cfg.InitialCentroids != nil {
		if len(cfg.InitialCentroids) != k {
			return nil, fmt.Errorf("%w: %d initial centroids for k=%d", ErrInvalidClusterCount, len(cfg.InitialCentroids), k)
		}
		if _, err := ValidateDataset(cfg.InitialCentroids); err != nil {
			return nil, fmt.Errorf("initial centroids: %w", err)
		}
		if d := len(cfg.InitialCentroids[0]); d != dim {
			return nil, fmt.Errorf("%w: initial centroids have dimension %d, want %d", ErrDimensionMismatch, d, dim)
		}
		limit := magnitudeLimit(len(data), dim)
		for i, c := range cfg.InitialCentroids {
			if m := floats.Norm(c, math.Inf(1)); m > limit {
				return nil, fmt.Errorf("%w: initial centroid %d has magnitude %g, limit %g", ErrNonFinite, i, m, limit)
			}
		}
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Source == nil {
		cfg.Source = NewSource(DefaultSeed)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Run{
		cfg:         cfg,
		data:        data,
		dim:         dim,
		k:           k,
		logger:      logger.With("k", k, "points", len(data), "dimension", dim),
		inertia:     noInertia,
		prevInertia: noInertia,
	}, nil
}

func (r *Run) State() State { return r.state }

// Centroids returns the current centroids. The slice is owned by the run.
func (r *Run) Centroids() []Point { return r.centroids }

// Seed picks the initial centroids and moves the run to Seeded.
// Seeding twice is an error.
func (r *Run) Seed() error {
	if r.state != Uninitialized {
		return fmt.Errorf("kmeans: seed in state %s", r.state)
	}
	if r.cfg.InitialCentroids != nil {
		r.centroids = make([]Point, r.k)
		for i, c := range r.cfg.InitialCentroids {
			r.centroids[i] = c.Clone()
		}
	} else {
		centroids, err := Seed(r.data, r.k, r.cfg.Source)
		if err != nil {
			return err
		}
		r.centroids = centroids
	}
	r.state = Seeded
	return nil
}

// Step runs one assignment and update pass and recomputes the inertia.
// An Uninitialized run is seeded first; a Converged run is left as is.
func (r *Run) Step(ctx context.Context) error {
	switch r.state {
	case Converged:
		return nil
	case Uninitialized:
		if err := r.Seed(); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	assignments, err := Assign(ctx, r.data, r.centroids, r.cfg.Workers)
	if err != nil {
		return err
	}
	moved := changed(r.assignments, assignments)
	empty := Update(r.data, r.centroids, assignments)
	r.iterations++
	for _, j := range empty {
		r.empty++
		r.logger.Warn("empty cluster, keeping previous centroid",
			"cluster", j,
			"iteration", r.iterations,
		)
	}

	r.prevInertia = r.inertia
	r.inertia = Inertia(r.data, r.centroids, assignments)
	r.assignments = assignments
	if r.cfg.Trace {
		r.trace = append(r.trace, r.inertia)
	}
	r.logger.Debug("iteration",
		"iteration", r.iterations,
		"inertia", r.inertia,
		"changed", moved,
	)

	if r.converged(moved) {
		r.state = Converged
	} else {
		r.state = Iterating
	}
	return nil
}

func (r *Run) converged(moved int) bool {
	if r.prevInertia == noInertia {
		return false
	}
	switch r.cfg.Convergence {
	case ConvergeEpsilon:
		return math.Abs(r.inertia-r.prevInertia) <= r.cfg.Epsilon
	case ConvergeAssignments:
		return moved == 0
	default:
		return r.inertia == r.prevInertia
	}
}

// Result snapshots the current state. Centroids are copied.
func (r *Run) Result() *Result {
	centroids := make([]Point, len(r.centroids))
	for i, c := range r.centroids {
		centroids[i] = c.Clone()
	}
	res := &Result{
		Centroids:     centroids,
		Assignments:   r.assignments,
		Inertia:       r.inertia,
		Iterations:    r.iterations,
		Converged:     r.state == Converged,
		EmptyClusters: r.empty,
	}
	if r.cfg.Trace {
		res.Trace = append([]float64(nil), r.trace...)
	}
	return res
}

// Fit clusters data into k clusters. It seeds once, then iterates until the
// configured convergence policy fires or MaxIterations is reached. Reaching
// the cap is not an error: the last state is returned with Converged false.
func Fit(ctx context.Context, data []Point, k int, cfg Config) (*Result, error) {
	r, err := NewRun(data, k, cfg)
	if err != nil {
		return nil, err
	}
	if err := r.Seed(); err != nil {
		return nil, err
	}
	for r.state != Converged {
		if r.iterations >= r.cfg.MaxIterations {
			r.logger.Warn("iteration cap reached before convergence",
				"iterations", r.iterations,
				"inertia", r.inertia,
			)
			break
		}
		if err := r.Step(ctx); err != nil {
			return nil, fmt.Errorf("kmeans: iteration %d: %w", r.iterations+1, err)
		}
	}
	return r.Result(), nil
}
