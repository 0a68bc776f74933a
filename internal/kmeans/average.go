package kmeans

// meanStore accumulates the running sum and count of the points of one cluster.
type meanStore struct {
	sum   Point
	count int
}

func (s *meanStore) Add(p Point) {
	if s.sum == nil {
		s.sum = make(Point, len(p))
	}
	s.sum = Add(s.sum, p)
	s.count++
}

// Mean writes sum/count into dst. It reports false and leaves dst untouched
// when nothing was added.
func (s *meanStore) Mean(dst Point) bool {
	if s.count == 0 {
		return false
	}
	n := float64(s.count)
	for i, v := range s.sum {
		dst[i] = v / n
	}
	return true
}
