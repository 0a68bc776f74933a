package kmeans

// Update moves every centroid to the mean of the points assigned to it, in
// one pass over the assignments. A centroid whose cluster received no points
// keeps its previous value; the indices of those clusters are returned.
func Update(data, centroids []Point, assignments []Assignment) (empty []int) {
	stores := make([]meanStore, len(centroids))
	for _, a := range assignments {
		stores[a.Cluster].Add(data[a.Index])
	}
	for j := range centroids {
		if !stores[j].Mean(centroids[j]) {
			empty = append(empty, j)
		}
	}
	return empty
}
