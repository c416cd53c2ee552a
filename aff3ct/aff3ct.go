// Package aff3ct is a thin compatibility layer over package bch with the
// type and method shapes of the aff3ct coding-theory framework, so call
// sites written against that framework port with an import swap. It holds
// no codec logic of its own.
package aff3ct

import (
	"github.com/litebch/litebch-go/bch"
)

// BCHPolynomialGenerator mirrors tools::BCH_polynomial_generator: it holds
// the construction parameters and exposes the realized redundancy.
type BCHPolynomialGenerator struct {
	n, t, nRdncy int
	p            []int
}

// NewBCHPolynomialGenerator builds a throwaway codec to obtain the realized
// redundancy for (n, t, p). A nil p selects the built-in primitive
// polynomial for the field order.
func NewBCHPolynomialGenerator(n, t int, p []int) (*BCHPolynomialGenerator, error) {
	c, err := bch.NewWithPolynomial(n, t, p)
	if err != nil {
		return nil, err
	}
	return &BCHPolynomialGenerator{n: n, t: t, nRdncy: n - c.K(), p: p}, nil
}

func (g *BCHPolynomialGenerator) NRdncy() int { return g.nRdncy }
func (g *BCHPolynomialGenerator) N() int      { return g.n }
func (g *BCHPolynomialGenerator) T() int      { return g.t }
func (g *BCHPolynomialGenerator) P() []int    { return g.p }

// EncoderBCH mirrors module::Encoder_BCH.
type EncoderBCH struct {
	c *bch.Codec
}

// NewEncoderBCH ignores k, as the upstream constructor does: the realized
// dimension comes out of the (n, t, p) construction.
func NewEncoderBCH(k, n int, gen *BCHPolynomialGenerator) (*EncoderBCH, error) {
	c, err := bch.NewWithPolynomial(n, gen.T(), gen.P())
	if err != nil {
		return nil, err
	}
	return &EncoderBCH{c: c}, nil
}

// Encode writes the systematic codeword for the K-bit message uK into xN,
// which must hold N bits.
func (e *EncoderBCH) Encode(uK, xN []bool) error {
	cw, err := e.c.EncodeBits(uK)
	if err != nil {
		return err
	}
	copy(xN, cw)
	return nil
}

// DecoderBCHStd mirrors module::Decoder_BCH_std.
type DecoderBCHStd struct {
	c *bch.Codec
}

func NewDecoderBCHStd(k, n int, gen *BCHPolynomialGenerator) (*DecoderBCHStd, error) {
	c, err := bch.NewWithPolynomial(n, gen.T(), gen.P())
	if err != nil {
		return nil, err
	}
	return &DecoderBCHStd{c: c}, nil
}

// DecodeHIHO decodes the hard-decision word yN into the K-bit message vK.
// The return value follows the upstream convention: 0 on success, 1 when
// the error pattern is uncorrectable.
func (d *DecoderBCHStd) DecodeHIHO(yN, vK []bool) int {
	msg, err := d.c.DecodeBits(yN)
	if err != nil {
		return 1
	}
	copy(vK, msg)
	return 0
}

// DecoderBCHFast is the same implementation; the byte tier in package bch
// is reachable directly for hosts that want it.
type DecoderBCHFast = DecoderBCHStd

// NewDecoderBCHFast constructs a DecoderBCHFast.
func NewDecoderBCHFast(k, n int, gen *BCHPolynomialGenerator) (*DecoderBCHFast, error) {
	return NewDecoderBCHStd(k, n, gen)
}
