package kmeans

import "errors"

var (
	ErrEmptyDataset        = errors.New("kmeans: empty dataset")
	ErrInvalidClusterCount = errors.New("kmeans: invalid cluster count")
	ErrDimensionMismatch   = errors.New("kmeans: dimension mismatch")
	ErrNonFinite           = errors.New("kmeans: non-finite value")
)
