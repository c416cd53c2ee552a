package bch_test

import (
	"math/rand"
	"testing"

	"github.com/litebch/litebch-go/bch"
	"github.com/litebch/litebch-go/internal/noise"
)

// The classic small-code walkthrough: BCH(31,16) with t=3, an alternating
// message, two flipped codeword bits.
func TestAlternatingMessageTwoFlips(t *testing.T) {
	c, err := bch.New(31, 3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.K() != 16 {
		t.Fatalf("K=%d, want 16", c.K())
	}

	msg := make([]bool, c.K())
	for i := range msg {
		msg[i] = i%2 == 0
	}
	cw, err := c.EncodeBits(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	cw[5] = !cw[5]
	cw[10] = !cw[10]

	got, err := c.DecodeBits(cw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := range msg {
		if got[i] != msg[i] {
			t.Fatalf("message bit %d wrong after correction", i)
		}
	}
}

// A long code with a caller-supplied primitive polynomial
// (x^10 + x^3 + 1) and a deep correction budget.
func TestLongCodeCustomPolynomial(t *testing.T) {
	p := []int{1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1}
	c, err := bch.NewWithPolynomial(1023, 50, p)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Logf("BCH(%d,%d) t=%d, %d parity bits", c.N(), c.K(), c.T(), c.ECCBits())

	rng := rand.New(rand.NewSource(1))
	msg := make([]bool, c.K())
	for i := range msg {
		msg[i] = rng.Intn(2) == 1
	}
	cw, err := c.EncodeBits(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// 50 errors: exactly at the correction budget
	rx := make([]bool, c.N())
	copy(rx, cw)
	for _, pos := range noise.Pattern(rng, c.N(), 50) {
		rx[pos] = !rx[pos]
	}
	got, err := c.DecodeBits(rx)
	if err != nil {
		t.Fatalf("decode at budget: %v", err)
	}
	for i := range msg {
		if got[i] != msg[i] {
			t.Fatalf("message bit %d wrong after correction", i)
		}
	}

	// Gross overrun: this fixed-seed 400-error pattern is not decodable.
	copy(rx, cw)
	for _, pos := range noise.Pattern(rng, c.N(), 400) {
		rx[pos] = !rx[pos]
	}
	if _, err := c.DecodeBits(rx); err == nil {
		t.Fatal("400-error pattern decoded without failure")
	}
}

// Byte tier across field orders with random bounded patterns.
func TestByteTierAcrossFieldOrders(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for m := 3; m <= 10; m++ {
		n := 1<<uint(m) - 1
		tt := 1
		if m >= 5 {
			tt = 3
		}
		c, err := bch.New(n, tt)
		if err != nil {
			t.Fatalf("m=%d: %v", m, err)
		}

		msg := make([]bool, c.K())
		for i := range msg {
			msg[i] = rng.Intn(2) == 1
		}
		data := bch.PackMessageBytes(msg)
		ecc := make([]byte, c.ECCBytes())
		if err := c.EncodeBytes(data, ecc); err != nil {
			t.Fatalf("m=%d encode: %v", m, err)
		}

		w := 1 + rng.Intn(c.T())
		for _, pos := range noise.Pattern(rng, c.N(), w) {
			if pos >= c.ECCBits() {
				sp := c.K() - 1 - (pos - c.ECCBits())
				data[sp/8] ^= 1 << uint(7-sp%8)
			} else {
				ecc[pos/8] ^= 1 << uint(pos%8)
			}
		}
		count, err := c.DecodeBytes(data, ecc)
		if err != nil {
			t.Fatalf("m=%d decode: %v", m, err)
		}
		if count != w {
			t.Fatalf("m=%d: corrected %d of %d", m, count, w)
		}
		if !boolsEqualRT(bch.UnpackMessageBytes(data, c.K()), msg) {
			t.Fatalf("m=%d: message mismatch", m)
		}
	}
}

func boolsEqualRT(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
