package bch

import (
	"bytes"
	"math/rand"
	"testing"
)

// The byte encoder must reproduce the bit-serial parity exactly once both
// are taken through the documented layouts. Exhaustive for a small K.
func TestEncoderEquivalenceExhaustive(t *testing.T) {
	c, err := New(15, 2) // K=7
	if err != nil {
		t.Fatal(err)
	}
	for v := 0; v < 1<<uint(c.K()); v++ {
		msg := make([]bool, c.K())
		for i := range msg {
			msg[i] = v>>uint(i)&1 == 1
		}
		cw, err := c.EncodeBits(msg)
		if err != nil {
			t.Fatal(err)
		}
		wantECC := PackParityBytes(cw[:c.ECCBits()])

		ecc := make([]byte, c.ECCBytes())
		if err := c.EncodeBytes(PackMessageBytes(msg), ecc); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(ecc, wantECC) {
			t.Fatalf("msg %07b: byte parity %x, bit parity %x", v, ecc, wantECC)
		}
	}
}

func TestEncoderEquivalenceRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, cfg := range []struct{ n, tc int }{{255, 8}, {511, 10}, {1023, 24}} {
		c, err := New(cfg.n, cfg.tc)
		if err != nil {
			t.Fatalf("N=%d t=%d: %v", cfg.n, cfg.tc, err)
		}
		for run := 0; run < 50; run++ {
			msg := make([]bool, c.K())
			for i := range msg {
				msg[i] = rng.Intn(2) == 1
			}
			cw, err := c.EncodeBits(msg)
			if err != nil {
				t.Fatal(err)
			}
			ecc := make([]byte, c.ECCBytes())
			if err := c.EncodeBytes(PackMessageBytes(msg), ecc); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(ecc, PackParityBytes(cw[:c.ECCBits()])) {
				t.Fatalf("N=%d t=%d run %d: parity mismatch", cfg.n, cfg.tc, run)
			}
		}
	}
}

// Every codeword produced by the encoder must satisfy g | c(x), i.e. all
// syndromes at the design roots vanish.
func TestEncodedWordHasZeroSyndromes(t *testing.T) {
	c, err := New(63, 5)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2))
	for run := 0; run < 20; run++ {
		msg := make([]bool, c.K())
		for i := range msg {
			msg[i] = rng.Intn(2) == 1
		}
		cw, err := c.EncodeBits(msg)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i <= 2*c.T(); i++ {
			acc := 0
			for j := 0; j < c.N(); j++ {
				if cw[j] {
					acc ^= c.alphaTo[i*j%c.N()]
				}
			}
			if acc != 0 {
				t.Fatalf("run %d: syndrome s[%d]=%d nonzero on a fresh codeword", run, i, acc)
			}
		}
	}
}

func TestEncodeLengthValidation(t *testing.T) {
	c, err := New(31, 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.EncodeBits(make([]bool, c.K()-1)); err == nil {
		t.Fatal("short message accepted")
	}
	if err := c.EncodeBytes(make([]byte, c.DataBytes()+1), make([]byte, c.ECCBytes())); err == nil {
		t.Fatal("oversized data accepted")
	}
	if err := c.EncodeBytes(make([]byte, c.DataBytes()), make([]byte, c.ECCBytes()-1)); err == nil {
		t.Fatal("short ecc buffer accepted")
	}
}
