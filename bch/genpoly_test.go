package bch

import "testing"

// divides reports whether g(x) divides x^n - 1 over GF(2).
func dividesXnMinus1(g []int, n int) bool {
	// Long division of x^n + 1 by g.
	rem := make([]int, n+1)
	rem[0] = 1
	rem[n] = 1
	deg := n
	gdeg := len(g) - 1
	for deg >= gdeg {
		if rem[deg] == 1 {
			for i := 0; i <= gdeg; i++ {
				rem[deg-gdeg+i] ^= g[i]
			}
		}
		deg--
		for deg >= 0 && rem[deg] == 0 {
			deg--
		}
		if deg < 0 {
			return true
		}
	}
	return deg < 0
}

func TestGeneratorDividesXnMinus1(t *testing.T) {
	cases := []struct{ n, tc int }{
		{7, 1}, {15, 2}, {15, 3}, {31, 3}, {63, 5}, {127, 9}, {255, 16},
	}
	for _, tt := range cases {
		c, err := New(tt.n, tt.tc)
		if err != nil {
			t.Fatalf("N=%d t=%d: %v", tt.n, tt.tc, err)
		}
		if !dividesXnMinus1(c.g, tt.n) {
			t.Fatalf("N=%d t=%d: g does not divide x^N-1", tt.n, tt.tc)
		}
		if c.g[0] != 1 || c.g[c.rdncy] != 1 {
			t.Fatalf("N=%d t=%d: generator not monic with nonzero constant", tt.n, tt.tc)
		}
	}
}

func TestRealizedDimensions(t *testing.T) {
	cases := []struct{ n, tc, wantK int }{
		{7, 1, 4},    // Hamming(7,4)
		{15, 2, 7},   // BCH(15,7)
		{15, 3, 5},   // BCH(15,5)
		{31, 1, 26},  // BCH(31,26)
		{31, 3, 16},  // BCH(31,16)
		{63, 3, 45},  // BCH(63,45)
		{255, 2, 239}, // BCH(255,239)
	}
	for _, tt := range cases {
		c, err := New(tt.n, tt.tc)
		if err != nil {
			t.Fatalf("N=%d t=%d: %v", tt.n, tt.tc, err)
		}
		if c.K() != tt.wantK {
			t.Fatalf("N=%d t=%d: realized K=%d, want %d", tt.n, tt.tc, c.K(), tt.wantK)
		}
		if c.ECCBits() != tt.n-tt.wantK {
			t.Fatalf("N=%d t=%d: ECCBits=%d", tt.n, tt.tc, c.ECCBits())
		}
	}
}

// A coset can overshoot the requested design roots; the realized
// redundancy is then larger than a closed-form N - m*t would predict.
func TestCosetOvershoot(t *testing.T) {
	c, err := New(31, 6)
	if err != nil {
		t.Fatal(err)
	}
	if c.K() >= c.N() || c.ECCBits() < 1 {
		t.Fatalf("degenerate dimensions K=%d r=%d", c.K(), c.ECCBits())
	}
	// Five cosets of size 5 cover roots 1..12, so r=25 regardless of the
	// naive m*t=30 bound being unreachable.
	if c.ECCBits() != 25 || c.K() != 6 {
		t.Fatalf("realized (K=%d, r=%d), want (6, 25)", c.K(), c.ECCBits())
	}
}
