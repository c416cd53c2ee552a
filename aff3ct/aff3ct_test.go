package aff3ct

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/litebch/litebch-go/bch"
)

func TestGeneratorReportsRealizedRedundancy(t *testing.T) {
	gen, err := NewBCHPolynomialGenerator(31, 3, nil)
	require.NoError(t, err)
	require.Equal(t, 31, gen.N())
	require.Equal(t, 3, gen.T())
	require.Equal(t, 15, gen.NRdncy()) // BCH(31,16)

	_, err = NewBCHPolynomialGenerator(30, 3, nil)
	require.Error(t, err)
}

func TestEncodeDecodeThroughShim(t *testing.T) {
	gen, err := NewBCHPolynomialGenerator(63, 5, nil)
	require.NoError(t, err)
	k := gen.N() - gen.NRdncy()

	enc, err := NewEncoderBCH(k, gen.N(), gen)
	require.NoError(t, err)
	dec, err := NewDecoderBCHStd(k, gen.N(), gen)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	uK := make([]bool, k)
	for i := range uK {
		uK[i] = rng.Intn(2) == 1
	}
	xN := make([]bool, gen.N())
	require.NoError(t, enc.Encode(uK, xN))

	for _, pos := range rng.Perm(gen.N())[:gen.T()] {
		xN[pos] = !xN[pos]
	}

	vK := make([]bool, k)
	require.Equal(t, 0, dec.DecodeHIHO(xN, vK))
	require.Equal(t, uK, vK)
}

func TestDecodeHIHOReportsFailure(t *testing.T) {
	gen, err := NewBCHPolynomialGenerator(63, 2, nil)
	require.NoError(t, err)
	k := gen.N() - gen.NRdncy()

	enc, err := NewEncoderBCH(k, gen.N(), gen)
	require.NoError(t, err)
	dec, err := NewDecoderBCHFast(k, gen.N(), gen)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	uK := make([]bool, k)
	xN := make([]bool, gen.N())
	vK := make([]bool, k)

	// Heavy corruption on many trials; a bounded-distance decoder must
	// report failure at least once.
	failed := false
	for trial := 0; trial < 200 && !failed; trial++ {
		for i := range uK {
			uK[i] = rng.Intn(2) == 1
		}
		require.NoError(t, enc.Encode(uK, xN))
		for _, pos := range rng.Perm(gen.N())[:3*gen.T()+2] {
			xN[pos] = !xN[pos]
		}
		failed = dec.DecodeHIHO(xN, vK) != 0
	}
	require.True(t, failed)
}

func TestShimMatchesDirectAPI(t *testing.T) {
	gen, err := NewBCHPolynomialGenerator(127, 6, nil)
	require.NoError(t, err)
	c, err := bch.New(127, 6)
	require.NoError(t, err)
	require.Equal(t, c.N()-c.K(), gen.NRdncy())
}
