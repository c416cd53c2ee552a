package bch

import "fmt"

// decodeScratch is the per-call working state of the decoder: the
// error-locator history of the Berlekamp–Massey iteration, the
// discrepancy/degree/step histories, the syndrome vector and the Chien
// search registers. It is pooled per codec so concurrent decodes on a
// shared instance never share mutable state; nothing in it survives a
// call.
type decodeScratch struct {
	elp   [][]int
	final int // row of elp holding the solved locator
	disc  []int
	deg   []int
	uLu   []int
	syn   []int
	loc   []int
	reg   []int
	ecc   []byte
}

func newDecodeScratch(n, t int) *decodeScratch {
	t2 := 2 * t
	elp := make([][]int, t2+5)
	for i := range elp {
		elp[i] = make([]int, n+1)
	}
	return &decodeScratch{
		elp:  elp,
		disc: make([]int, t2+5),
		deg:  make([]int, t2+5),
		uLu:  make([]int, t2+5),
		syn:  make([]int, t2+1),
		loc:  make([]int, t+1),
		reg:  make([]int, t+1),
		ecc:  make([]byte, (n+7)/8),
	}
}

// DecodeBits decodes a possibly corrupted N-bit codeword in the
// [parity | message] layout and returns the K message bits. It runs the
// bit-serial reference tier: direct O(N*t) syndrome evaluation over the
// bit vector, then the shared key-equation/Chien pipeline. Returns
// ErrUncorrectable when more than t errors are detected.
func (c *Codec) DecodeBits(received []bool) ([]bool, error) {
	if len(received) != c.n {
		return nil, fmt.Errorf("bch: received length %d, want N=%d", len(received), c.n)
	}
	cw := append([]bool(nil), received...)
	if _, err := c.correctBits(cw); err != nil {
		return nil, err
	}
	msg := make([]bool, c.k)
	copy(msg, cw[c.rdncy:])
	return msg, nil
}

// correctBits corrects cw in place and returns the number of corrected
// bits.
func (c *Codec) correctBits(cw []bool) (int, error) {
	scr := c.getScratch()
	defer c.putScratch(scr)

	t2 := 2 * c.t
	synError := false
	for i := 1; i <= t2; i++ {
		acc := 0
		for j := 0; j < c.n; j++ {
			if cw[j] {
				acc ^= c.alphaTo[i*j%c.n]
			}
		}
		if acc != 0 {
			synError = true
		}
		scr.syn[i] = c.indexOf[acc]
	}
	if !synError {
		return 0, nil
	}

	degree, ok := c.solveKeyEquation(scr)
	if !ok {
		return 0, ErrUncorrectable
	}
	count := c.chienSearch(scr, degree)
	if count != degree {
		return 0, ErrUncorrectable
	}
	for i := 0; i < count; i++ {
		cw[scr.loc[i]] = !cw[scr.loc[i]]
	}
	return count, nil
}

// solveKeyEquation runs the Berlekamp–Massey iteration over the
// index-form syndromes in scr.syn and leaves the solved locator (index
// form) in scr.elp[scr.final]. All arithmetic is log-table index
// addition mod N with logZero as the zero-element sentinel. When the
// discrepancy at a step is nonzero, the earlier step q with the largest
// u - l[q] among nonzero-discrepancy steps is combined in, scaled by the
// discrepancy ratio. Returns the final locator degree and false when it
// exceeds t (uncorrectable).
func (c *Codec) solveKeyEquation(scr *decodeScratch) (int, bool) {
	t2 := 2 * c.t
	elp, d, l, uLu, s := scr.elp, scr.disc, scr.deg, scr.uLu, scr.syn

	d[0] = 0
	d[1] = s[1]
	elp[0][0] = 0
	elp[1][0] = 1
	for i := 1; i < t2; i++ {
		elp[0][i] = logZero
		elp[1][i] = 0
	}
	l[0], l[1] = 0, 0
	uLu[0], uLu[1] = -1, 0

	u := 0
	for {
		u++
		if d[u] == logZero {
			l[u+1] = l[u]
			for i := 0; i <= l[u]; i++ {
				elp[u+1][i] = elp[u][i]
				elp[u][i] = c.indexOf[elp[u][i]]
			}
		} else {
			q := u - 1
			for d[q] == logZero && q > 0 {
				q--
			}
			if q > 0 {
				for j := q - 1; j >= 0; j-- {
					if d[j] != logZero && uLu[q] < uLu[j] {
						q = j
					}
				}
			}

			if l[u] > l[q]+u-q {
				l[u+1] = l[u]
			} else {
				l[u+1] = l[q] + u - q
			}

			for i := 0; i < t2; i++ {
				elp[u+1][i] = 0
			}
			for i := 0; i <= l[q]; i++ {
				if elp[q][i] != logZero {
					elp[u+1][i+u-q] = c.alphaTo[(d[u]+c.n-d[q]+elp[q][i])%c.n]
				}
			}
			for i := 0; i <= l[u]; i++ {
				elp[u+1][i] ^= elp[u][i]
				elp[u][i] = c.indexOf[elp[u][i]]
			}
		}
		uLu[u+1] = u - l[u+1]

		if u < t2 {
			if s[u+1] != logZero {
				d[u+1] = c.alphaTo[s[u+1]]
			} else {
				d[u+1] = 0
			}
			for i := 1; i <= l[u+1]; i++ {
				if s[u+1-i] != logZero && elp[u+1][i] != 0 {
					d[u+1] ^= c.alphaTo[(s[u+1-i]+c.indexOf[elp[u+1][i]])%c.n]
				}
			}
			d[u+1] = c.indexOf[d[u+1]]
		}

		if u >= t2 || l[u+1] > c.t {
			break
		}
	}

	u++
	if l[u] > c.t {
		return 0, false
	}
	for i := 0; i <= l[u]; i++ {
		elp[u][i] = c.indexOf[elp[u][i]]
	}
	scr.final = u
	return l[u], true
}

// chienSearch evaluates the solved locator at every nonzero field element
// by advancing each term's exponent by its own degree per step; exponents
// stay below N via conditional subtraction so the inner loop has no
// modulo. Positions N-i where the evaluation vanishes are recorded in
// scr.loc. Returns the root count, which the callers require to equal the
// locator degree exactly.
func (c *Codec) chienSearch(scr *decodeScratch, degree int) int {
	elpFinal := scr.elp[scr.final]
	for i := 1; i <= degree; i++ {
		scr.reg[i] = elpFinal[i]
	}
	count := 0
	for i := 1; i <= c.n; i++ {
		q := 1
		for j := 1; j <= degree; j++ {
			if scr.reg[j] != logZero {
				v := scr.reg[j] + j
				if v >= c.n {
					v -= c.n
				}
				scr.reg[j] = v
				q ^= c.alphaTo[v]
			}
		}
		if q == 0 {
			scr.loc[count] = c.n - i
			count++
		}
	}
	return count
}

// DecodeBytes decodes the byte tier in place: data holds the packed
// message (MSB-first, highest degree first) and ecc the packed parity
// (LSB-first). On success both buffers are corrected and the number of
// corrected bits is returned; ErrUncorrectable leaves them in an
// unspecified state.
//
// Syndromes are computed without touching the N-K message symbols: by
// linearity, re-encoding the received message and XORing with the
// received parity yields a short difference string whose syndromes equal
// those of the full received word. That difference is folded byte by byte
// through the syndrome table, advancing each evaluation point by alpha^8i
// per byte (Horner over bytes, high degree first).
func (c *Codec) DecodeBytes(data []byte, ecc []byte) (int, error) {
	if len(data) != c.dataBytes {
		return 0, fmt.Errorf("bch: data length %d bytes, want %d", len(data), c.dataBytes)
	}
	if len(ecc) != c.eccBytes {
		return 0, fmt.Errorf("bch: ecc length %d bytes, want %d", len(ecc), c.eccBytes)
	}

	scr := c.getScratch()
	defer c.putScratch(scr)

	diff := scr.ecc[:c.eccBytes]
	if err := c.EncodeBytes(data, diff); err != nil {
		return 0, err
	}
	for i := range diff {
		diff[i] ^= ecc[i]
	}

	t2 := 2 * c.t
	for i := 1; i <= t2; i++ {
		scr.syn[i] = 0
	}
	for k := c.eccBytes - 1; k >= 0; k-- {
		b := diff[k]
		if k == c.eccBytes-1 {
			if valid := c.rdncy % 8; valid != 0 {
				b &= byte(1<<uint(valid) - 1)
			}
		}
		for i := 1; i <= t2; i++ {
			if scr.syn[i] != 0 {
				idx := c.indexOf[scr.syn[i]] + c.alpha8[i]
				if idx >= c.n {
					idx -= c.n
				}
				scr.syn[i] = c.alphaTo[idx]
			}
			scr.syn[i] ^= c.syndromeLUT[i][b]
		}
	}

	synError := false
	for i := 1; i <= t2; i++ {
		if scr.syn[i] != 0 {
			synError = true
			scr.syn[i] = c.indexOf[scr.syn[i]]
		} else {
			scr.syn[i] = logZero
		}
	}
	if !synError {
		return 0, nil
	}

	degree, ok := c.solveKeyEquation(scr)
	if !ok {
		return 0, ErrUncorrectable
	}
	count := c.chienSearch(scr, degree)
	if count != degree {
		return 0, ErrUncorrectable
	}

	for i := 0; i < count; i++ {
		pos := scr.loc[i]
		if pos >= c.rdncy {
			// Message region: map the degree back to the MSB-first
			// stream position.
			streamPos := c.k - 1 - (pos - c.rdncy)
			data[streamPos/8] ^= 1 << uint(7-streamPos%8)
		} else {
			ecc[pos/8] ^= 1 << uint(pos%8)
		}
	}
	return count, nil
}

// initSyndromeTable precomputes the per-byte syndrome contributions:
// syndromeLUT[i][b] is byte value b, taken as 8 polynomial coefficients,
// evaluated at alpha^i. alpha8[i] is the log-domain Horner step that
// advances the evaluation point 8 bit positions.
func (c *Codec) initSyndromeTable() {
	t2 := 2 * c.t
	c.syndromeLUT = make([][]int, t2+1)
	c.alpha8 = make([]int, t2+1)
	for i := 1; i <= t2; i++ {
		row := make([]int, 256)
		for b := 0; b < 256; b++ {
			v := 0
			for p := 0; p < 8; p++ {
				if (b>>uint(p))&1 == 1 {
					v ^= c.alphaTo[i*p%c.n]
				}
			}
			row[b] = v
		}
		c.syndromeLUT[i] = row
		c.alpha8[i] = i * 8 % c.n
	}
}
