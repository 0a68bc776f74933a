package bitconv

import "math/bits"

// Width returns the number of bits needed to store every value in [0,n).
// It is at least 1.
func Width(n int) int {
	if n <= 2 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

// AppendUint appends the low width bits of v to dst, most significant first.
func AppendUint(dst []bool, v uint64, width int) []bool {
	for i := width - 1; i >= 0; i-- {
		dst = append(dst, (v>>uint(i))&1 == 1)
	}
	return dst
}

// ToUint is the inverse of AppendUint for a single value.
func ToUint(bits []bool) uint64 {
	var v uint64
	for _, b := range bits {
		v <<= 1
		if b {
			v |= 1
		}
	}
	return v
}

// UintsToBools packs every value with the same width.
func UintsToBools(values []int, width int) []bool {
	out := make([]bool, 0, len(values)*width)
	for _, v := range values {
		out = AppendUint(out, uint64(v), width)
	}
	return out
}

// BoolsToUints splits bits into width sized values. Trailing bits that do
// not fill a value are ignored.
func BoolsToUints(bits []bool, width int) []int {
	out := make([]int, len(bits)/width)
	for i := range out {
		out[i] = int(ToUint(bits[i*width : (i+1)*width]))
	}
	return out
}
