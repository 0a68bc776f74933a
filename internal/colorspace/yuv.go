package colorspace

// https://github.com/opencv/opencv/blob/0e88b49a53842f0f7cdc4c61b98c283be7e5057c/modules/imgproc/src/opencl/color_yuv.cl#L148-L234

const delta = .5
const (
	yr = 0.299
	yg = 0.587
	yb = 0.114
	uf = 0.492
	vf = 0.877
)

func rgbToYUV(r, g, b float64) (y, u, v float64) {
	y = yr*r + yg*g + yb*b
	u = uf*(b-y) + delta
	v = vf*(r-y) + delta
	return
}

const (
	vr = 1.140
	ug = -0.395
	vg = -0.581
	ub = 2.032
)

func yuvToRGB(y, u, v float64) (r, g, b float64) {
	uDelta := u - delta
	vDelta := v - delta
	r = y + vr*vDelta
	g = y + ug*uDelta + vg*vDelta
	b = y + ub*uDelta
	return
}
