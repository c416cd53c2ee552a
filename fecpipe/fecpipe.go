// Package fecpipe concatenates an outer RaptorQ erasure code across
// packets with an inner binary BCH code per packet. The outer code
// recovers lost packets; the inner code scrubs bit errors inside the
// packets that do arrive, and turns uncorrectable packets into erasures
// for the outer code.
package fecpipe

import (
	"errors"
	"fmt"

	rqq "github.com/xssnick/raptorq"

	"github.com/litebch/litebch-go/bch"
)

var ErrDecodeFailed = errors.New("fecpipe: not enough intact symbols to reconstruct payload")

// Config describes one generation of the pipeline.
type Config struct {
	// Outer code: N symbols total, K of them source symbols, each
	// SymbolLen bytes.
	N, K, SymbolLen int

	// Inner code parameters, passed to bch.New.
	InnerN, InnerT int
}

// Pipeline encodes payloads into protected packets and reconstructs
// payloads from a subset of them. Safe for concurrent use.
type Pipeline struct {
	cfg Config
	c   *bch.Codec

	// chunkBytes payload bytes are protected per inner codeword; only
	// whole bytes of the inner dimension are used, so every chunk bit is
	// covered.
	chunkBytes int
	chunks     int
}

func New(cfg Config) (*Pipeline, error) {
	if cfg.N <= 0 || cfg.K <= 0 || cfg.K > cfg.N || cfg.SymbolLen <= 0 {
		return nil, fmt.Errorf("fecpipe: bad outer parameters N=%d K=%d L=%d", cfg.N, cfg.K, cfg.SymbolLen)
	}
	c, err := bch.New(cfg.InnerN, cfg.InnerT)
	if err != nil {
		return nil, err
	}
	chunkBytes := c.K() / 8
	if chunkBytes == 0 {
		return nil, fmt.Errorf("fecpipe: inner dimension K=%d too small for byte payloads", c.K())
	}
	return &Pipeline{
		cfg:        cfg,
		c:          c,
		chunkBytes: chunkBytes,
		chunks:     (cfg.SymbolLen + chunkBytes - 1) / chunkBytes,
	}, nil
}

// Inner returns the inner codec, for callers that want its realized
// parameters.
func (p *Pipeline) Inner() *bch.Codec { return p.c }

// PacketLen returns the on-wire length of every packet: the outer symbol
// followed by one parity trailer per inner codeword.
func (p *Pipeline) PacketLen() int {
	return p.cfg.SymbolLen + p.chunks*p.c.ECCBytes()
}

// MaxPayload returns the largest payload one generation carries.
func (p *Pipeline) MaxPayload() int { return p.cfg.K * p.cfg.SymbolLen }

// Encode expands payload into N packets. Packet i carries outer symbol i;
// any K intact packets reconstruct the payload.
func (p *Pipeline) Encode(payload []byte) ([][]byte, error) {
	if len(payload) > p.MaxPayload() {
		return nil, fmt.Errorf("fecpipe: payload %d exceeds %d", len(payload), p.MaxPayload())
	}
	rq := rqq.NewRaptorQ(uint32(p.cfg.SymbolLen))
	enc, err := rq.CreateEncoder(payload)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, p.cfg.N)
	data := make([]byte, p.c.DataBytes())
	for i := 0; i < p.cfg.N; i++ {
		pkt := make([]byte, p.PacketLen())
		copy(pkt, enc.GenSymbol(uint32(i)))
		for ch := 0; ch < p.chunks; ch++ {
			for j := range data {
				data[j] = 0
			}
			start := ch * p.chunkBytes
			end := start + p.chunkBytes
			if end > p.cfg.SymbolLen {
				end = p.cfg.SymbolLen
			}
			copy(data, pkt[start:end])
			ecc := pkt[p.cfg.SymbolLen+ch*p.c.ECCBytes():]
			if err := p.c.EncodeBytes(data, ecc[:p.c.ECCBytes()]); err != nil {
				return nil, err
			}
		}
		out[i] = pkt
	}
	return out, nil
}

// Decode reconstructs a payload of payloadLen bytes from received packets,
// indexed by outer symbol id. A nil entry marks a lost packet; packets
// whose inner code cannot be repaired count as lost too. It returns the
// payload and the total number of corrected bits.
func (p *Pipeline) Decode(packets [][]byte, payloadLen int) ([]byte, int, error) {
	if payloadLen < 0 || payloadLen > p.MaxPayload() {
		return nil, 0, fmt.Errorf("fecpipe: bad payload length %d", payloadLen)
	}
	rq := rqq.NewRaptorQ(uint32(p.cfg.SymbolLen))
	dec, err := rq.CreateDecoder(uint32(payloadLen))
	if err != nil {
		return nil, 0, err
	}
	corrected := 0
	data := make([]byte, p.c.DataBytes())
	for id, pkt := range packets {
		if pkt == nil || len(pkt) != p.PacketLen() || id >= p.cfg.N {
			continue
		}
		symbol := make([]byte, p.cfg.SymbolLen)
		copy(symbol, pkt[:p.cfg.SymbolLen])
		intact := true
		pktCorrected := 0
		for ch := 0; ch < p.chunks && intact; ch++ {
			for j := range data {
				data[j] = 0
			}
			start := ch * p.chunkBytes
			end := start + p.chunkBytes
			if end > p.cfg.SymbolLen {
				end = p.cfg.SymbolLen
			}
			copy(data, symbol[start:end])
			ecc := make([]byte, p.c.ECCBytes())
			copy(ecc, pkt[p.cfg.SymbolLen+ch*p.c.ECCBytes():])
			n, err := p.c.DecodeBytes(data, ecc)
			if err != nil {
				intact = false
				break
			}
			pktCorrected += n
			copy(symbol[start:end], data)
		}
		if !intact {
			continue
		}
		corrected += pktCorrected
		if _, err := dec.AddSymbol(uint32(id), symbol); err != nil {
			continue
		}
	}
	ok, payload, err := dec.Decode()
	if err != nil || !ok {
		return nil, corrected, ErrDecodeFailed
	}
	return payload, corrected, nil
}
