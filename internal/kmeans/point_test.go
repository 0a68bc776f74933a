package kmeans

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredDistance(t *testing.T) {
	test := []struct {
		name string
		a, b Point
		exp  float64
	}{
		{name: "identical", a: Point{1, 2, 3}, b: Point{1, 2, 3}, exp: 0},
		{name: "one channel", a: Point{0, 0, 0}, b: Point{3, 0, 0}, exp: 9},
		{name: "all channels", a: Point{0, 0, 0}, b: Point{1, 2, 2}, exp: 9},
		{name: "negative", a: Point{-1, -1}, b: Point{1, 1}, exp: 8},
		{name: "wide range", a: Point{0, 0, 0}, b: Point{255, 255, 255}, exp: 3 * 255 * 255},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exp, SquaredDistance(tt.a, tt.b))
			assert.Equal(t, SquaredDistance(tt.a, tt.b), SquaredDistance(tt.b, tt.a), "symmetric")
			assert.Zero(t, SquaredDistance(tt.a, tt.a))
		})
	}
}

func TestAdd(t *testing.T) {
	acc := Point{1, 2, 3}
	p := Point{10, 20, 30}
	got := Add(acc, p)
	assert.Equal(t, Point{11, 22, 33}, got)
	assert.Equal(t, Point{11, 22, 33}, acc, "accumulates in place")
	assert.Equal(t, Point{10, 20, 30}, p)
}

func TestPointClone(t *testing.T) {
	p := Point{1, 2}
	c := p.Clone()
	c[0] = 9
	assert.Equal(t, Point{1, 2}, p)
	assert.True(t, p.Equal(Point{1, 2}))
	assert.False(t, p.Equal(c))
	assert.Equal(t, 2, p.Dim())
}

func TestValidateDataset(t *testing.T) {
	test := []struct {
		name string
		data []Point
		dim  int
		err  error
	}{
		{name: "ok", data: []Point{{1, 2, 3}, {4, 5, 6}}, dim: 3},
		{name: "empty", data: nil, err: ErrEmptyDataset},
		{name: "zero dimension", data: []Point{{}}, err: ErrDimensionMismatch},
		{name: "mismatch", data: []Point{{1, 2, 3}, {1, 2}}, err: ErrDimensionMismatch},
		{name: "nan", data: []Point{{1, math.NaN(), 3}}, err: ErrNonFinite},
		{name: "inf", data: []Point{{1, 2, 3}, {math.Inf(-1), 0, 0}}, err: ErrNonFinite},
		{name: "large but bounded", data: []Point{{1e150}, {-1e150}}, dim: 1},
		{name: "distance would overflow", data: []Point{{1e200}, {1.7e308}}, err: ErrNonFinite},
		{name: "inertia would overflow", data: []Point{{1e154}, {-1e154}, {0}, {0}}, err: ErrNonFinite},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			dim, err := ValidateDataset(tt.data)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dim, dim)
		})
	}
}

func TestMeanStore(t *testing.T) {
	var s meanStore
	dst := Point{7, 7, 7}
	assert.False(t, s.Mean(dst))
	assert.Equal(t, Point{7, 7, 7}, dst, "empty store leaves dst untouched")

	s.Add(Point{1, 1, 1})
	s.Add(Point{2, 2, 2})
	s.Add(Point{3, 3, 3})
	require.True(t, s.Mean(dst))
	assert.Equal(t, Point{2, 2, 2}, dst)
}
