package bch

// computeGenerator synthesizes the generator polynomial from the
// cyclotomic cosets of {1..N-1} under doubling mod N. Every coset that
// meets the design roots {1..2t} contributes all of its exponents as
// zeros of g, so g is the product of the corresponding minimal
// polynomials and divides x^N - 1. deg(g) (and hence K) falls out of the
// coset granularity; it is not a closed-form function of (N, t).
func (c *Codec) computeGenerator() {
	visited := make([]bool, c.n)
	visited[0] = true
	var zeros []int
	for rep := 1; rep < c.n; rep++ {
		if visited[rep] {
			continue
		}
		orbit := []int{rep}
		visited[rep] = true
		for next := rep * 2 % c.n; next != rep; next = next * 2 % c.n {
			orbit = append(orbit, next)
			visited[next] = true
		}
		for _, e := range orbit {
			if e >= 1 && e < c.d {
				zeros = append(zeros, orbit...)
				break
			}
		}
	}

	rdncy := len(zeros)
	g := make([]int, rdncy+1)

	// Multiply (x - alpha^zero) terms together one root at a time,
	// keeping coefficients in polynomial form and the scaling in the log
	// domain.
	g[0] = c.alphaTo[zeros[0]]
	g[1] = 1
	for i := 2; i <= rdncy; i++ {
		z := zeros[i-1]
		g[i] = 1
		for j := i - 1; j > 0; j-- {
			if g[j] != 0 {
				g[j] = g[j-1] ^ c.alphaTo[(c.indexOf[g[j]]+z)%c.n]
			} else {
				g[j] = g[j-1]
			}
		}
		g[0] = c.alphaTo[(c.indexOf[g[0]]+z)%c.n]
	}

	// The product has binary coefficients by construction (conjugate
	// roots come in complete cosets); force them onto GF(2).
	for i := range g {
		g[i] &= 1
	}

	c.g = g
	c.rdncy = rdncy
	c.gbit = make([]bool, rdncy+1)
	for i, v := range g {
		c.gbit[i] = v == 1
	}
}
