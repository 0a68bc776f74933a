package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	data := randomPoints(200, 3, 7)

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		a, err := Seed(data, 5, NewSource(42))
		require.NoError(t, err)
		b, err := Seed(data, 5, NewSource(42))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
	t.Run("centroids are copies of data points", func(t *testing.T) {
		centroids, err := Seed(data, 5, NewSource(1))
		require.NoError(t, err)
		require.Len(t, centroids, 5)
		for _, c := range centroids {
			assert.Contains(t, data, c)
		}
		centroids[0][0] = -1
		for _, p := range data {
			assert.NotEqual(t, -1.0, p[0], "data must not alias centroids")
		}
	})
	t.Run("nil source uses the default seed", func(t *testing.T) {
		a, err := Seed(data, 4, nil)
		require.NoError(t, err)
		b, err := Seed(data, 4, NewSource(DefaultSeed))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
	t.Run("spreads over separated groups", func(t *testing.T) {
		groups := []Point{{0, 0, 0}, {0, 0, 0}, {10, 10, 10}, {10, 10, 10}}
		for seed := range uint64(20) {
			centroids, err := Seed(groups, 2, NewSource(seed))
			require.NoError(t, err)
			assert.NotEqual(t, centroids[0], centroids[1], "seed %d", seed)
		}
	})
	t.Run("fewer distinct points than k", func(t *testing.T) {
		same := []Point{{5, 5}, {5, 5}, {5, 5}}
		centroids, err := Seed(same, 3, NewSource(3))
		require.NoError(t, err)
		require.Len(t, centroids, 3)
		for _, c := range centroids {
			assert.Equal(t, Point{5, 5}, c)
		}
	})
	t.Run("k larger than n", func(t *testing.T) {
		centroids, err := Seed([]Point{{1}, {2}}, 4, NewSource(3))
		require.NoError(t, err)
		assert.Len(t, centroids, 4)
	})
}

func TestSeed_Errors(t *testing.T) {
	_, err := Seed(nil, 2, nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
	_, err = Seed([]Point{{1}}, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidClusterCount)
}

func TestSeed_SquaredDistanceWeighting(t *testing.T) {
	data := []Point{{0}, {1}, {3}}
	// exp[first][second] is the probability of picking second after first,
	// proportional to the squared distance to first.
	exp := map[float64]map[float64]float64{
		0: {1: 1.0 / 10, 3: 9.0 / 10},
		1: {0: 1.0 / 5, 3: 4.0 / 5},
		3: {0: 9.0 / 13, 1: 4.0 / 13},
	}
	const runs = 6000
	firsts := map[float64]int{}
	pairs := map[float64]map[float64]int{}
	for seed := range uint64(runs) {
		centroids, err := Seed(data, 2, NewSource(seed))
		require.NoError(t, err)
		first, second := centroids[0][0], centroids[1][0]
		require.NotEqual(t, first, second, "seed %d", seed)
		firsts[first]++
		if pairs[first] == nil {
			pairs[first] = map[float64]int{}
		}
		pairs[first][second]++
	}

	for first, probs := range exp {
		n := firsts[first]
		assert.InDelta(t, 1.0/3, float64(n)/runs, 0.03, "first pick %v", first)
		for second, p := range probs {
			got := float64(pairs[first][second]) / float64(n)
			assert.InDelta(t, p, got, 0.05, "pick %v after %v", second, first)
		}
	}
}
