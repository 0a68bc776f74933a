package colorcluster_test

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/yyyoichi/colorcluster"
	"github.com/yyyoichi/colorcluster/palette"
)

func Example_quantize() {
	// Left half red, right half blue, with a little noise
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := range 20 {
		for x := range 40 {
			n := uint8((x + y) % 3)
			if x < 20 {
				img.Set(x, y, color.RGBA{254 + n%2, n, n, 255})
			} else {
				img.Set(x, y, color.RGBA{n, n, 254 + n%2, 255})
			}
		}
	}

	q, err := colorcluster.Quantize(context.Background(), img, 2,
		colorcluster.WithPalette(palette.OkabeIto()),
	)
	if err != nil {
		fmt.Printf("Error quantizing image: %v\n", err)
		return
	}

	var painted []string
	for _, c := range q.Painted {
		r, g, b, _ := c.RGBA()
		painted = append(painted, fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
	}
	slices.Sort(painted)
	fmt.Println(painted)
	fmt.Println(q.Sizes())

	// Output:
	// [#0072b2 #d55e00]
	// [400 400]
}

func Example_cluster() {
	data := []colorcluster.Point{
		{0, 0, 0}, {0, 0, 0},
		{10, 10, 10}, {10, 10, 10},
	}
	res, err := colorcluster.Cluster(context.Background(), data, 2)
	if err != nil {
		fmt.Printf("Error clustering: %v\n", err)
		return
	}
	centroids := slices.Clone(res.Centroids)
	slices.SortFunc(centroids, func(a, b colorcluster.Point) int { return int(a[0] - b[0]) })
	fmt.Println(centroids, res.Inertia, res.Converged)

	// Output:
	// [[0 0 0] [10 10 10]] 0 true
}
