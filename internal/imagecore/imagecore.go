// Package imagecore turns an image into clustering points and rebuilds an
// image from per-pixel labels.
package imagecore

import (
	"errors"
	"image"
	"image/color"

	"github.com/yyyoichi/colorcluster/internal/colorspace"
	"github.com/yyyoichi/colorcluster/internal/kmeans"
	"golang.org/x/image/draw"
)

var ErrEmptyImage = errors.New("imagecore: image has no pixels")

// Source holds the pixels of an image as points in one color space, in
// row-major order. Alpha is kept aside and never clustered.
type Source struct {
	bounds        image.Rectangle
	width, height int
	area          int

	alpha  []uint16
	points []kmeans.Point
}

func New(src image.Image, space colorspace.Space) (*Source, error) {
	s := &Source{bounds: src.Bounds()}
	s.width, s.height = s.bounds.Dx(), s.bounds.Dy()
	s.area = s.width * s.height
	if s.area == 0 {
		return nil, ErrEmptyImage
	}
	s.points = make([]kmeans.Point, s.area)
	s.alpha = make([]uint16, s.area)

	// one backing array for all channels
	buf := make([]float64, s.area*colorspace.Channels)
	for i := range s.points {
		s.points[i] = buf[i*colorspace.Channels : (i+1)*colorspace.Channels : (i+1)*colorspace.Channels]
	}

	pixels := make([]color.Color, s.area)
	idx := 0
	for y := s.bounds.Min.Y; y < s.bounds.Max.Y; y++ {
		for x := s.bounds.Min.X; x < s.bounds.Max.X; x++ {
			pixels[idx] = src.At(x, y)
			idx++
		}
	}
	space.ToPointBatch(pixels, s.points, s.alpha)
	return s, nil
}

func (s *Source) Points() []kmeans.Point { return s.points }
func (s *Source) Size() (width, height int) { return s.width, s.height }

// Build paints every pixel with colors[labels[i]] and restores the original
// alpha. The result has the bounds of the source image.
func (s *Source) Build(labels []int, colors []color.Color) *image.NRGBA64 {
	fill := make([]color.NRGBA64, len(colors))
	for i, c := range colors {
		fill[i] = color.NRGBA64Model.Convert(c).(color.NRGBA64)
	}
	dst := image.NewNRGBA64(s.bounds)
	idx := 0
	for y := s.bounds.Min.Y; y < s.bounds.Max.Y; y++ {
		for x := s.bounds.Min.X; x < s.bounds.Max.X; x++ {
			c := fill[labels[idx]]
			c.A = s.alpha[idx]
			dst.SetNRGBA64(x, y, c)
			idx++
		}
	}
	return dst
}

// Thumbnail returns src scaled down so that its longer side is maxSide,
// keeping the aspect ratio. src is returned as is when maxSide <= 0 or the
// image already fits.
func Thumbnail(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}
	tw, th := maxSide, maxSide
	if w >= h {
		th = max(1, h*maxSide/w)
	} else {
		tw = max(1, w*maxSide/h)
	}
	dst := image.NewRGBA64(image.Rect(0, 0, tw, th))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
