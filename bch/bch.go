// Package bch implements a binary BCH (Bose–Chaudhuri–Hocquenghem)
// forward-error-correction codec over GF(2^m).
//
// A codec is constructed for a block length N = 2^m - 1 and a requested
// error-correction capability t. The generator polynomial is synthesized
// from the cyclotomic cosets meeting the design roots alpha^1..alpha^2t,
// so the realized message length K = N - deg(g) is an output of
// construction: callers must read it back via K() and never assume a
// closed form such as K = N - m*t. When coset boundaries overshoot 2t the
// realized minimum distance is larger than requested.
//
// Codewords are systematic with the parity bits first:
// [parity (N-K bits) | message (K bits)].
//
// Two performance tiers are provided and produce identical results: a
// bit-serial reference tier (EncodeBits/DecodeBits) and a byte-oriented
// table-accelerated tier (EncodeBytes/DecodeBytes). The byte tier packs
// message bytes MSB-first with the highest-degree message bit in bit 7 of
// byte 0, and parity bytes LSB-first with parity bit i in bit i%8 of byte
// i/8. The asymmetry matches the bit-serial reference and is part of the
// wire contract.
//
// If the number of actual bit errors exceeds t, decoding may either report
// an uncorrectable pattern or, for unlucky patterns, "succeed" with wrong
// corrections. The latter is inherent to bounded-distance decoding and is
// not detected beyond the locator-degree and root-count checks.
package bch

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"
)

// ErrUncorrectable is returned by the decode operations when the syndrome
// is nonzero but no error pattern of weight <= t explains it. The caller's
// buffers are left in an unspecified, partially processed state.
var ErrUncorrectable = errors.New("bch: uncorrectable error pattern")

// Codec holds the field tables, generator polynomial and acceleration
// tables for one (N, t) code. All state is immutable after construction;
// a Codec is safe for concurrent use (decode working state is pooled per
// call, see decodeScratch).
type Codec struct {
	n, k, m, t int
	d          int // design distance 2t+1
	rdncy      int // parity bits, deg(g)

	eccBits, eccBytes, eccWords int
	dataBytes                   int

	p       []int // primitive polynomial, m+1 binary coefficients
	alphaTo []int // exponent -> field element; alphaTo[n] stays 0 (wrap sentinel)
	indexOf []int // field element -> exponent; indexOf[0] == logZero

	g    []int  // generator polynomial, binary coefficients, len rdncy+1
	gbit []bool // g as bits, for the LFSR step

	encodeLUT   [256][]uint32 // remainder update per input byte, eccWords wide
	gPacked     []uint32      // g[0..eccBits-1] packed little-endian
	syndromeLUT [][]int       // [i][b]: byte b evaluated at alpha^i, poly form
	alpha8      []int         // (8*i) mod n, Horner step per syndrome index

	scratch sync.Pool
}

// New constructs a codec for block length n = 2^m - 1 and capability t
// using the built-in primitive polynomial for the derived m (supported for
// m = 3..16).
func New(n, t int) (*Codec, error) {
	return NewWithPolynomial(n, t, nil)
}

// NewWithPolynomial is New with a caller-supplied primitive polynomial of
// exactly m+1 binary coefficients with p[0] = p[m] = 1. A nil polynomial
// selects the built-in default.
func NewWithPolynomial(n, t int, p []int) (*Codec, error) {
	m := bits.Len(uint(n))
	if n < 7 || n != 1<<m-1 {
		return nil, fmt.Errorf("bch: block length %d is not 2^m-1 for m >= 3", n)
	}
	if t < 1 || 2*t >= n {
		return nil, fmt.Errorf("bch: capability t=%d out of range for N=%d", t, n)
	}

	c := &Codec{n: n, m: m, t: t, d: 2*t + 1}

	if p != nil {
		if len(p) != m+1 {
			return nil, fmt.Errorf("bch: primitive polynomial has %d coefficients, want m+1=%d", len(p), m+1)
		}
		if p[0] != 1 || p[m] != 1 {
			return nil, errors.New("bch: primitive polynomial must have p[0] = p[m] = 1")
		}
		c.p = append([]int(nil), p...)
	} else {
		dp, err := defaultPolynomial(m)
		if err != nil {
			return nil, err
		}
		c.p = dp
	}

	c.initGalois()
	c.computeGenerator()
	c.k = c.n - c.rdncy

	c.eccBits = c.rdncy
	c.eccWords = (c.eccBits + 31) / 32
	c.eccBytes = (c.eccBits + 7) / 8
	c.dataBytes = (c.k + 7) / 8

	c.initEncodeTable()
	c.initSyndromeTable()

	c.scratch.New = func() any { return newDecodeScratch(c.n, c.t) }
	return c, nil
}

// N returns the codeword length in bits.
func (c *Codec) N() int { return c.n }

// K returns the realized message length in bits.
func (c *Codec) K() int { return c.k }

// T returns the requested error-correction capability. The realized
// minimum distance can exceed 2t+1; the decoder's locator-degree bound is
// the requested t.
func (c *Codec) T() int { return c.t }

// M returns the Galois field order exponent.
func (c *Codec) M() int { return c.m }

// ECCBits returns the number of parity bits, deg(g).
func (c *Codec) ECCBits() int { return c.eccBits }

// ECCBytes returns the size of the packed parity buffer for the byte tier.
func (c *Codec) ECCBytes() int { return c.eccBytes }

// ECCWords returns the parity width in 32-bit words.
func (c *Codec) ECCWords() int { return c.eccWords }

// DataBytes returns the size of the packed message buffer for the byte tier.
func (c *Codec) DataBytes() int { return c.dataBytes }

func (c *Codec) getScratch() *decodeScratch {
	return c.scratch.Get().(*decodeScratch)
}

func (c *Codec) putScratch(s *decodeScratch) {
	c.scratch.Put(s)
}
