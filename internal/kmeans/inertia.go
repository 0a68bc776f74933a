package kmeans

// Inertia returns the total within-cluster squared distance of the given
// state.
func Inertia(data, centroids []Point, assignments []Assignment) float64 {
	var sum float64
	for _, a := range assignments {
		sum += SquaredDistance(data[a.Index], centroids[a.Cluster])
	}
	return sum
}
