package svc

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/litebch/litebch-go/bch"
)

// We avoid importing the generated proto now to keep this file compiling
// before protoc runs. Request/response placeholders are shaped like the
// generated types and get replaced once stubs exist.

type EncodeRequest struct {
	N, T int
	Data []byte
}

type EncodeResponse struct {
	Ecc []byte
}

type DecodeRequest struct {
	N, T int
	Data []byte
	Ecc  []byte
}

type DecodeResponse struct {
	Data          []byte
	Ecc           []byte
	CorrectedBits int
}

var (
	encodeTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "litebch",
		Name:      "encode_total",
		Help:      "Completed encode requests.",
	})
	decodeTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "litebch",
		Name:      "decode_total",
		Help:      "Completed decode requests.",
	})
	decodeFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "litebch",
		Name:      "decode_failed_total",
		Help:      "Decode requests with uncorrectable error patterns.",
	})
	correctedBits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "litebch",
		Name:      "corrected_bits_total",
		Help:      "Bits corrected across all decode requests.",
	})
)

// CodecServer serves encode/decode over a lazily built codec registry
// keyed by (N, t). To be wired with generated gRPC later.
type CodecServer struct {
	mu     sync.Mutex
	codecs map[[2]int]*bch.Codec
}

func NewCodecServer() *CodecServer {
	return &CodecServer{codecs: make(map[[2]int]*bch.Codec)}
}

func (s *CodecServer) codec(n, t int) (*bch.Codec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int{n, t}
	if c, ok := s.codecs[key]; ok {
		return c, nil
	}
	c, err := bch.New(n, t)
	if err != nil {
		return nil, err
	}
	s.codecs[key] = c
	return c, nil
}

func (s *CodecServer) Encode(ctx context.Context, req *EncodeRequest) (*EncodeResponse, error) {
	c, err := s.codec(req.N, req.T)
	if err != nil {
		return nil, err
	}
	if len(req.Data) != c.DataBytes() {
		return nil, fmt.Errorf("svc: data is %d bytes, codec wants %d", len(req.Data), c.DataBytes())
	}
	ecc := make([]byte, c.ECCBytes())
	if err := c.EncodeBytes(req.Data, ecc); err != nil {
		return nil, err
	}
	encodeTotal.Inc()
	return &EncodeResponse{Ecc: ecc}, nil
}

func (s *CodecServer) Decode(ctx context.Context, req *DecodeRequest) (*DecodeResponse, error) {
	c, err := s.codec(req.N, req.T)
	if err != nil {
		return nil, err
	}
	data := make([]byte, len(req.Data))
	copy(data, req.Data)
	ecc := make([]byte, len(req.Ecc))
	copy(ecc, req.Ecc)
	n, err := c.DecodeBytes(data, ecc)
	decodeTotal.Inc()
	if err != nil {
		decodeFailed.Inc()
		return nil, err
	}
	correctedBits.Add(float64(n))
	return &DecodeResponse{Data: data, Ecc: ecc, CorrectedBits: n}, nil
}
