package bch

import "fmt"

// logZero is the index-domain sentinel for the zero field element, which
// has no discrete log. It only ever appears in index-form values inside
// the decoder; the public API never exposes it.
const logZero = -1

// primitivePolyTaps lists the middle taps of the built-in primitive
// polynomial per field order m; p[0] and p[m] are always 1.
var primitivePolyTaps = map[int][]int{
	3:  {1},
	4:  {1},
	5:  {2},
	6:  {1},
	7:  {1},
	8:  {4, 5, 6},
	9:  {4},
	10: {3},
	11: {2},
	12: {3, 4, 7},
	13: {1, 3, 4},
	14: {1, 11, 12},
	15: {1},
	16: {2, 3, 5},
}

func defaultPolynomial(m int) ([]int, error) {
	taps, ok := primitivePolyTaps[m]
	if !ok {
		return nil, fmt.Errorf("bch: no built-in primitive polynomial for m=%d (supported: 3..16)", m)
	}
	p := make([]int, m+1)
	p[0], p[m] = 1, 1
	for _, i := range taps {
		p[i] = 1
	}
	return p, nil
}

// initGalois fills the log/antilog tables by running alpha's powers
// through the primitive-polynomial LFSR: the first m powers are plain
// shifted bits, alphaTo[m] is the reduction of x^m by p, and each later
// entry doubles the previous one, reducing when the top bit leaves the
// m-bit field.
func (c *Codec) initGalois() {
	c.alphaTo = make([]int, c.n+1)
	c.indexOf = make([]int, c.n+1)

	mask := 1
	c.alphaTo[c.m] = 0
	for i := 0; i < c.m; i++ {
		c.alphaTo[i] = mask
		c.indexOf[mask] = i
		if c.p[i] != 0 {
			c.alphaTo[c.m] ^= mask
		}
		mask <<= 1
	}
	c.indexOf[c.alphaTo[c.m]] = c.m
	mask >>= 1
	for i := c.m + 1; i < c.n; i++ {
		if c.alphaTo[i-1] >= mask {
			c.alphaTo[i] = c.alphaTo[c.m] ^ (c.alphaTo[i-1]^mask)<<1
		} else {
			c.alphaTo[i] = c.alphaTo[i-1] << 1
		}
		c.indexOf[c.alphaTo[i]] = i
	}
	c.indexOf[0] = logZero
}
