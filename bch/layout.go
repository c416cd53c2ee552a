package bch

// The byte tier uses two deliberately different bit-significance
// conventions, inherited from the bit-serial reference and part of the
// wire contract: message bytes are packed MSB-first with the
// highest-degree message bit leading, parity bytes LSB-first by bit
// index. Keep them as separate named packers; do not unify.

// PackMessageBytes packs K message bits (message index i carries degree
// r+i in the codeword) into bytes MSB-first, highest degree first: the
// highest-degree bit occupies bit 7 of byte 0.
func PackMessageBytes(message []bool) []byte {
	k := len(message)
	out := make([]byte, (k+7)/8)
	for i, b := range message {
		if !b {
			continue
		}
		sp := k - 1 - i
		out[sp/8] |= 1 << uint(7-sp%8)
	}
	return out
}

// UnpackMessageBytes is the inverse of PackMessageBytes for a K-bit
// message.
func UnpackMessageBytes(data []byte, k int) []bool {
	message := make([]bool, k)
	for i := 0; i < k; i++ {
		sp := k - 1 - i
		message[i] = data[sp/8]>>uint(7-sp%8)&1 == 1
	}
	return message
}

// PackParityBytes packs r parity bits LSB-first by bit index: parity bit
// i occupies bit i%8 of byte i/8.
func PackParityBytes(parity []bool) []byte {
	out := make([]byte, (len(parity)+7)/8)
	for i, b := range parity {
		if b {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// UnpackParityBytes is the inverse of PackParityBytes for r parity bits.
func UnpackParityBytes(ecc []byte, r int) []bool {
	parity := make([]bool, r)
	for i := 0; i < r; i++ {
		parity[i] = ecc[i/8]>>uint(i%8)&1 == 1
	}
	return parity
}

// BitsFromBytes expands whole bytes into bits, LSB first within each
// byte. Collaborator layers use this for host data that has no
// polynomial-degree meaning.
func BitsFromBytes(data []byte) []bool {
	bits := make([]bool, len(data)*8)
	for i, by := range data {
		for j := 0; j < 8; j++ {
			bits[i*8+j] = by>>uint(j)&1 == 1
		}
	}
	return bits
}

// BytesFromBits is the inverse of BitsFromBytes; len(bits) must be a
// multiple of 8.
func BytesFromBits(bits []bool) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var by byte
		for j := 0; j < 8; j++ {
			if bits[i*8+j] {
				by |= 1 << uint(j)
			}
		}
		out[i] = by
	}
	return out
}
