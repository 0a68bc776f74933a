package colorspace

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/colorcluster/internal/kmeans"
)

func TestSpace_RoundTrip(t *testing.T) {
	colors := []color.NRGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{128, 64, 32, 255},
		{12, 200, 180, 255},
	}
	test := []struct {
		space Space
		delta float64
	}{
		{space: RGB, delta: 0},
		{space: YUV, delta: 2},
		{space: Lab, delta: 1},
	}
	for _, tt := range test {
		t.Run(tt.space.String(), func(t *testing.T) {
			for _, c := range colors {
				got := tt.space.ToColor(tt.space.ToPoint(c))
				assert.InDelta(t, c.R, got.R, tt.delta, "%v R", c)
				assert.InDelta(t, c.G, got.G, tt.delta, "%v G", c)
				assert.InDelta(t, c.B, got.B, tt.delta, "%v B", c)
				assert.Equal(t, uint8(255), got.A)
			}
		})
	}
}

func TestSpace_ToPoint(t *testing.T) {
	assert.Equal(t, kmeans.Point{255, 128, 0}, RGB.ToPoint(color.RGBA{255, 128, 0, 255}))

	y := YUV.ToPoint(color.Gray{Y: 100})
	assert.InDelta(t, 100, y[0], 1e-9)
	assert.InDelta(t, delta, y[1], 1e-9)
	assert.InDelta(t, delta, y[2], 1e-9)

	white := Lab.ToPoint(color.White)
	assert.InDelta(t, 100, white[0], 0.01)
	assert.InDelta(t, 0, white[1], 0.01)
	assert.InDelta(t, 0, white[2], 0.01)
}

func TestSpace_Batch(t *testing.T) {
	pixels := []color.Color{
		color.NRGBA{200, 100, 50, 128},
		color.NRGBA{0, 0, 0, 0},
		color.RGBA{10, 20, 30, 255},
	}
	points := make([]kmeans.Point, len(pixels))
	alpha := make([]uint16, len(pixels))
	RGB.ToPointBatch(pixels, points, alpha)

	assert.Equal(t, []uint16{128 * 257, 0, 0xffff}, alpha)
	assert.InDelta(t, 200, points[0][0], 1)
	assert.Equal(t, kmeans.Point{10, 20, 30}, points[2])
	assert.Equal(t, color.NRGBA{10, 20, 30, 0xff}, RGB.ToColor(points[2]))
}

func TestClip16(t *testing.T) {
	assert.Equal(t, uint16(0), clip16(-3))
	assert.Equal(t, uint16(0xffff), clip16(300))
	assert.Equal(t, uint16(0xffff), clip16(255))
	assert.Equal(t, uint16(128*257), clip16(128))
}

func TestParseSpace(t *testing.T) {
	for _, s := range []Space{RGB, YUV, Lab} {
		got, err := ParseSpace(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.True(t, s.Valid())
	}
	_, err := ParseSpace("hsv")
	assert.Error(t, err)
	assert.False(t, Space(7).Valid())
}
