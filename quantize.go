package colorcluster

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/yyyoichi/colorcluster/internal/imagecore"
	"github.com/yyyoichi/colorcluster/internal/kmeans"
)

// Quantized is an image reduced to k colors.
type Quantized struct {
	// Image has the bounds of the input; every pixel holds the color of its
	// cluster and its original alpha.
	Image *image.NRGBA64
	// Colors are the cluster centroids as sRGB colors, indexed by label.
	Colors []color.NRGBA
	// Painted are the colors written to Image, indexed by label. They differ
	// from Colors when a palette is configured.
	Painted []color.Color
	// Labels holds the cluster of every pixel, row-major.
	Labels        []int
	Width, Height int
	// Result is the clustering run. With WithMaxSide its inertia and
	// assignments refer to the scaled copy the clusters were fitted on.
	Result *Result
}

// Quantize reduces img to k colors.
//
// Process:
//  1. Converts every pixel to a point in the configured color space.
//  2. Optionally scales the image down and fits the clusters on the copy.
//  3. Labels every full-resolution pixel with its nearest centroid.
//  4. Paints each pixel with its centroid color, or its palette replacement.
//
// Returns ErrEmptyImage for images without pixels.
func (c *Clusterer) Quantize(ctx context.Context, img image.Image, k int) (*Quantized, error) {
	src, err := imagecore.New(img, c.space)
	if err != nil {
		return nil, err
	}
	width, height := src.Size()

	fit := src
	if c.maxSide > 0 && (width > c.maxSide || height > c.maxSide) {
		if fit, err = imagecore.New(imagecore.Thumbnail(img, c.maxSide), c.space); err != nil {
			return nil, err
		}
	}
	fw, fh := fit.Size()
	c.logger.Debug("quantize",
		"width", width,
		"height", height,
		"fitWidth", fw,
		"fitHeight", fh,
		"k", k,
		"space", c.space,
	)

	res, err := c.Cluster(ctx, fit.Points(), k)
	if err != nil {
		return nil, err
	}

	var labels []int
	if fit == src {
		labels = res.Labels()
	} else {
		assignments, err := kmeans.Assign(ctx, src.Points(), res.Centroids, c.workers)
		if err != nil {
			return nil, fmt.Errorf("colorcluster: label full image: %w", err)
		}
		labels = make([]int, len(assignments))
		for _, a := range assignments {
			labels[a.Index] = a.Cluster
		}
	}

	colors := make([]color.NRGBA, len(res.Centroids))
	painted := make([]color.Color, len(res.Centroids))
	for i, p := range res.Centroids {
		colors[i] = c.space.ToColor(p)
		painted[i] = colors[i]
	}
	if c.palette != nil {
		painted = c.palette.Map(painted, c.distinct)
	}

	return &Quantized{
		Image:   src.Build(labels, painted),
		Colors:  colors,
		Painted: painted,
		Labels:  labels,
		Width:   width,
		Height:  height,
		Result:  res,
	}, nil
}

// Sizes returns the number of pixels per label.
func (q *Quantized) Sizes() []int {
	sizes := make([]int, len(q.Colors))
	for _, l := range q.Labels {
		sizes[l]++
	}
	return sizes
}
