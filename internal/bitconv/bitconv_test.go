package bitconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidth(t *testing.T) {
	test := []struct {
		n   int
		exp int
	}{
		{n: 0, exp: 1},
		{n: 1, exp: 1},
		{n: 2, exp: 1},
		{n: 3, exp: 2},
		{n: 4, exp: 2},
		{n: 5, exp: 3},
		{n: 16, exp: 4},
		{n: 17, exp: 5},
		{n: 256, exp: 8},
	}
	for _, tt := range test {
		assert.Equal(t, tt.exp, Width(tt.n), "n=%d", tt.n)
	}
}

func TestBitConv(t *testing.T) {
	test := []struct {
		data  []int
		width int
		exp   []bool
	}{
		{data: []int{1, 0, 1}, width: 1, exp: []bool{true, false, true}},
		{data: []int{2, 3}, width: 2, exp: []bool{true, false, true, true}},
		{data: []int{5}, width: 4, exp: []bool{false, true, false, true}},
		{data: []int{}, width: 3, exp: []bool{}},
	}
	for _, tt := range test {
		bits := UintsToBools(tt.data, tt.width)
		assert.Equal(t, tt.exp, bits)
		assert.Equal(t, tt.data, BoolsToUints(bits, tt.width))
	}
}

func TestToUint(t *testing.T) {
	bits := AppendUint(nil, 0b1011_0110, 8)
	assert.Equal(t, uint64(0b1011_0110), ToUint(bits))
	// trailing partial value is dropped
	assert.Equal(t, []int{3}, BoolsToUints([]bool{true, true, true}, 2))
}
