package labelmap

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomMap(k, width, height int, seed uint64) *Map {
	rng := rand.New(rand.NewPCG(seed, seed))
	m := &Map{K: k, Width: width, Height: height, Labels: make([]int, width*height)}
	for i := range m.Labels {
		m.Labels[i] = rng.IntN(k)
	}
	return m
}

func TestRoundTrip(t *testing.T) {
	test := []struct {
		name          string
		k             int
		width, height int
	}{
		{name: "single cluster", k: 1, width: 7, height: 3},
		{name: "binary", k: 2, width: 64, height: 1},
		{name: "odd k", k: 3, width: 13, height: 11},
		{name: "word boundary", k: 17, width: 64, height: 5},
		{name: "byte labels", k: 256, width: 40, height: 30},
		{name: "one pixel", k: 6, width: 1, height: 1},
		{name: "empty", k: 4, width: 0, height: 0},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			m := randomMap(tt.k, tt.width, tt.height, uint64(tt.k))
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, m))

			got, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, m.K, got.K)
			assert.Equal(t, m.Width, got.Width)
			assert.Equal(t, m.Height, got.Height)
			assert.Equal(t, m.Labels, got.Labels)
		})
	}
}

func TestAt(t *testing.T) {
	m := &Map{K: 3, Width: 3, Height: 2, Labels: []int{0, 1, 2, 2, 1, 0}}
	assert.Equal(t, 2, m.At(2, 0))
	assert.Equal(t, 1, m.At(1, 1))
	assert.Equal(t, 0, m.At(2, 1))
}

func TestCompresses(t *testing.T) {
	m := &Map{K: 8, Width: 512, Height: 512, Labels: make([]int, 512*512)}
	for i := range m.Labels {
		m.Labels[i] = (i / 512) % 8
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, m))
	// 3 bits per label uncompressed
	assert.Less(t, buf.Len(), 512*512*3/8/10)
}

func TestEncode_Invalid(t *testing.T) {
	test := []struct {
		name string
		m    *Map
		err  error
	}{
		{name: "label too large", m: &Map{K: 2, Width: 2, Height: 1, Labels: []int{0, 2}}, err: ErrLabelRange},
		{name: "negative label", m: &Map{K: 2, Width: 1, Height: 1, Labels: []int{-1}}, err: ErrLabelRange},
		{name: "zero k", m: &Map{K: 0, Width: 1, Height: 1, Labels: []int{0}}, err: ErrLabelRange},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Encode(&bytes.Buffer{}, tt.m), tt.err)
		})
	}
	assert.Error(t, Encode(&bytes.Buffer{}, &Map{K: 2, Width: 2, Height: 2, Labels: []int{0}}))
}

func TestDecode_Invalid(t *testing.T) {
	var valid bytes.Buffer
	require.NoError(t, Encode(&valid, &Map{K: 4, Width: 2, Height: 1, Labels: []int{3, 1}}))
	data := valid.Bytes()

	patch := func(i int, b byte) []byte {
		out := bytes.Clone(data)
		out[i] = b
		return out
	}

	test := []struct {
		name string
		data []byte
		err  error
	}{
		{name: "bad magic", data: patch(0, 'X'), err: ErrBadMagic},
		{name: "version", data: patch(4, 9), err: ErrUnsupportedVersion},
		// k=3 keeps the 2-bit layout, so the stored 3 is out of range
		{name: "label beyond k", data: patch(5, 3), err: ErrLabelRange},
		{name: "zero k", data: patch(5, 0), err: ErrCorrupt},
		{name: "truncated header", data: data[:3], err: ErrCorrupt},
		{name: "truncated payload", data: data[:8], err: ErrCorrupt},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
