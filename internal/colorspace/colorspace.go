// Package colorspace converts pixels to and from the float channels the
// clustering engine works on.
package colorspace

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/yyyoichi/colorcluster/internal/kmeans"
)

// Space is the channel layout a pixel is clustered in. Every space has
// three channels.
type Space int

const (
	// RGB channels in [0,255].
	RGB Space = iota
	// YUV with the OpenCV BT.601 coefficients.
	YUV
	// Lab is CIE L*a*b* under D65, L in [0,100].
	Lab
)

const Channels = 3

func (s Space) String() string {
	switch s {
	case RGB:
		return "rgb"
	case YUV:
		return "yuv"
	case Lab:
		return "lab"
	default:
		return fmt.Sprintf("Space(%d)", int(s))
	}
}

func (s Space) Valid() bool { return s >= RGB && s <= Lab }

func ParseSpace(name string) (Space, error) {
	switch name {
	case "rgb", "RGB":
		return RGB, nil
	case "yuv", "YUV":
		return YUV, nil
	case "lab", "Lab", "LAB":
		return Lab, nil
	}
	return 0, fmt.Errorf("colorspace: unknown space %q", name)
}

// ToPoint converts c into a new point in space s. Alpha is dropped.
func (s Space) ToPoint(c color.Color) kmeans.Point {
	p := make(kmeans.Point, Channels)
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	s.fromNRGBA64(n, p)
	return p
}

// ToColor converts p back into an opaque 8-bit sRGB color, clamping channels
// that fall outside the gamut.
func (s Space) ToColor(p kmeans.Point) color.NRGBA {
	n := s.toNRGBA64(p, 0xffff)
	return color.NRGBA{R: uint8(n.R >> 8), G: uint8(n.G >> 8), B: uint8(n.B >> 8), A: 0xff}
}

// ToPointBatch converts every pixel to a point in space s and stores its
// straight alpha in alpha. points and alpha must have len(pixels) entries;
// nil points are allocated.
func (s Space) ToPointBatch(pixels []color.Color, points []kmeans.Point, alpha []uint16) {
	for i, pixel := range pixels {
		n := color.NRGBA64Model.Convert(pixel).(color.NRGBA64)
		if points[i] == nil {
			points[i] = make(kmeans.Point, Channels)
		}
		s.fromNRGBA64(n, points[i])
		alpha[i] = n.A
	}
}

func (s Space) fromNRGBA64(n color.NRGBA64, p kmeans.Point) {
	r := float64(n.R) / 257
	g := float64(n.G) / 257
	b := float64(n.B) / 257
	switch s {
	case YUV:
		p[0], p[1], p[2] = rgbToYUV(r, g, b)
	case Lab:
		l, a, bb := colorful.Color{R: r / 255, G: g / 255, B: b / 255}.Lab()
		p[0], p[1], p[2] = l*100, a*100, bb*100
	default:
		p[0], p[1], p[2] = r, g, b
	}
}

func (s Space) toNRGBA64(p kmeans.Point, a uint16) color.NRGBA64 {
	var r, g, b float64
	switch s {
	case YUV:
		r, g, b = yuvToRGB(p[0], p[1], p[2])
	case Lab:
		c := colorful.Lab(p[0]/100, p[1]/100, p[2]/100).Clamped()
		r, g, b = c.R*255, c.G*255, c.B*255
	default:
		r, g, b = p[0], p[1], p[2]
	}
	return color.NRGBA64{R: clip16(r), G: clip16(g), B: clip16(b), A: a}
}

// clip16 maps a [0,255] channel to 16 bits, saturating out of range values.
func clip16(v float64) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 0xffff
	}
	return uint16(v*257 + 0.5)
}
