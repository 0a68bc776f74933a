package colorcluster

import (
	"github.com/yyyoichi/colorcluster/internal/colorspace"
	"github.com/yyyoichi/colorcluster/internal/imagecore"
	"github.com/yyyoichi/colorcluster/internal/kmeans"
)

type (
	// Point is a fixed-dimension vector of float64 channels.
	Point = kmeans.Point
	// Assignment maps a data index to a cluster index.
	Assignment = kmeans.Assignment
	Result     = kmeans.Result
	// Convergence selects when iteration stops.
	Convergence = kmeans.Convergence
	// Space is the color space pixels are clustered in.
	Space = colorspace.Space
)

const (
	ConvergeExact       = kmeans.ConvergeExact
	ConvergeEpsilon     = kmeans.ConvergeEpsilon
	ConvergeAssignments = kmeans.ConvergeAssignments

	RGB = colorspace.RGB
	YUV = colorspace.YUV
	Lab = colorspace.Lab

	DefaultMaxIterations = kmeans.DefaultMaxIterations
	DefaultSeed          = kmeans.DefaultSeed
)

var (
	ErrEmptyDataset        = kmeans.ErrEmptyDataset
	ErrInvalidClusterCount = kmeans.ErrInvalidClusterCount
	ErrDimensionMismatch   = kmeans.ErrDimensionMismatch
	ErrNonFinite           = kmeans.ErrNonFinite
	ErrEmptyImage          = imagecore.ErrEmptyImage
)

func ParseConvergence(s string) (Convergence, error) { return kmeans.ParseConvergence(s) }

func ParseSpace(s string) (Space, error) { return colorspace.ParseSpace(s) }
