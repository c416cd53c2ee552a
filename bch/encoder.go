package bch

import "fmt"

// EncodeBits encodes a K-bit message into an N-bit systematic codeword
// laid out as [parity | message]. This is the bit-serial reference tier;
// EncodeBytes must produce identical parity through the documented byte
// layouts.
func (c *Codec) EncodeBits(message []bool) ([]bool, error) {
	if len(message) != c.k {
		return nil, fmt.Errorf("bch: message length %d, want K=%d", len(message), c.k)
	}
	out := make([]bool, c.n)
	c.lfsrParity(message, out[:c.rdncy])
	copy(out[c.rdncy:], message)
	return out, nil
}

// lfsrParity shifts the message through the length-r generator LFSR,
// highest-degree bit first, leaving the parity in par.
func (c *Codec) lfsrParity(message []bool, par []bool) {
	for i := range par {
		par[i] = false
	}
	for i := c.k - 1; i >= 0; i-- {
		feedback := message[i] != par[c.rdncy-1]
		for j := c.rdncy - 1; j > 0; j-- {
			par[j] = par[j-1] != (c.gbit[j] && feedback)
		}
		par[0] = c.gbit[0] && feedback
	}
}

// initEncodeTable precomputes, for every input byte value, the LFSR
// remainder produced by shifting that byte through r zeroed register
// stages. By linearity the byte encoder can then fold a whole input byte
// with one lookup and a word-wise XOR. It also packs g for the bit-serial
// tail step.
func (c *Codec) initEncodeTable() {
	rem := make([]bool, c.eccBits)
	for v := 0; v < 256; v++ {
		for i := range rem {
			rem[i] = false
		}
		for bit := 7; bit >= 0; bit-- {
			input := (v>>bit)&1 == 1
			feedback := input != rem[c.eccBits-1]
			for j := c.eccBits - 1; j > 0; j-- {
				rem[j] = rem[j-1] != (c.gbit[j] && feedback)
			}
			rem[0] = c.gbit[0] && feedback
		}
		row := make([]uint32, c.eccWords)
		for i, b := range rem {
			if b {
				row[i/32] |= 1 << uint(i%32)
			}
		}
		c.encodeLUT[v] = row
	}

	c.gPacked = make([]uint32, c.eccWords)
	for i := 0; i < c.eccBits; i++ {
		if c.gbit[i] {
			c.gPacked[i/32] |= 1 << uint(i%32)
		}
	}
}

// topByte extracts the top 8 bits of the little-endian packed remainder.
func topByte(par []uint32, nBits int) byte {
	var res byte
	for i := 0; i < 8; i++ {
		pos := nBits - 8 + i
		if pos < 0 {
			continue
		}
		if par[pos/32]&(1<<uint(pos%32)) != 0 {
			res |= 1 << uint(i)
		}
	}
	return res
}

func shiftLeft8(par []uint32) {
	var carry uint32
	for w := range par {
		tmp := par[w]
		par[w] = tmp<<8 | carry
		carry = tmp >> 24
	}
}

// maskParity clears remainder bits at or beyond nBits.
func maskParity(par []uint32, nBits int) {
	for w := range par {
		start := w * 32
		switch {
		case start >= nBits:
			par[w] = 0
		case start+32 > nBits:
			par[w] &= 1<<uint(nBits-start) - 1
		}
	}
}

// EncodeBytes encodes a packed message into packed parity. The message is
// packed MSB-first with the highest-degree bit in bit 7 of byte 0 (see
// PackMessageBytes); the parity is written LSB-first with parity bit i in
// bit i%8 of byte i/8 (see PackParityBytes). data must be exactly
// DataBytes() long and eccOut exactly ECCBytes().
func (c *Codec) EncodeBytes(data []byte, eccOut []byte) error {
	if len(data) != c.dataBytes {
		return fmt.Errorf("bch: data length %d bytes, want %d", len(data), c.dataBytes)
	}
	if len(eccOut) != c.eccBytes {
		return fmt.Errorf("bch: ecc buffer length %d bytes, want %d", len(eccOut), c.eccBytes)
	}

	par := make([]uint32, c.eccWords)
	fullBytes := c.k / 8
	remBits := c.k % 8

	for i := 0; i < fullBytes; i++ {
		feedback := topByte(par, c.eccBits) ^ data[i]
		shiftLeft8(par)
		maskParity(par, c.eccBits)
		lut := c.encodeLUT[feedback]
		for w := range par {
			par[w] ^= lut[w]
		}
	}

	// Any message bits short of a full byte go through the plain LFSR
	// step, one bit at a time from the top of the last byte.
	if remBits > 0 {
		last := data[fullBytes]
		topWord, topBit := (c.eccBits-1)/32, uint((c.eccBits-1)%32)
		for b := 0; b < remBits; b++ {
			input := last>>uint(7-b)&1 == 1
			feedback := input != (par[topWord]&(1<<topBit) != 0)
			var carry uint32
			for w := range par {
				tmp := par[w]
				par[w] = tmp<<1 | carry
				carry = tmp >> 31
			}
			if feedback {
				for w := range par {
					par[w] ^= c.gPacked[w]
				}
			}
		}
		maskParity(par, c.eccBits)
	}

	for i := range eccOut {
		eccOut[i] = 0
	}
	for i := 0; i < c.eccBits; i++ {
		if par[i/32]&(1<<uint(i%32)) != 0 {
			eccOut[i/8] |= 1 << uint(i%8)
		}
	}
	return nil
}
