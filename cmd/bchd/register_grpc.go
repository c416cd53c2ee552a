//go:build grpcproto

package main

import (
	"context"

	pb "github.com/litebch/litebch-go/gen/litebch"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/litebch/litebch-go/internal/svc"
)

// codecGRPC wraps svc.CodecServer into the generated gRPC interface.
type codecGRPC struct {
	pb.UnimplementedCodecServer
	inner *svc.CodecServer
}

// Provide the concrete registration by assigning to the package-level variable from register.go.
func init() {
	registerCodec = func(grpcSrv *grpc.Server, inner *svc.CodecServer) {
		pb.RegisterCodecServer(grpcSrv, &codecGRPC{inner: inner})
	}
}

func (s *codecGRPC) Encode(ctx context.Context, req *pb.EncodeRequest) (*pb.EncodeResponse, error) {
	resp, err := s.inner.Encode(ctx, &svc.EncodeRequest{
		N: int(req.N), T: int(req.T), Data: req.Data,
	})
	if err != nil {
		return nil, err
	}
	return &pb.EncodeResponse{Ecc: resp.Ecc}, nil
}

func (s *codecGRPC) Decode(ctx context.Context, req *pb.DecodeRequest) (*pb.DecodeResponse, error) {
	resp, err := s.inner.Decode(ctx, &svc.DecodeRequest{
		N: int(req.N), T: int(req.T), Data: req.Data, Ecc: req.Ecc,
	})
	if err != nil {
		return nil, err
	}
	return &pb.DecodeResponse{
		Data: resp.Data, Ecc: resp.Ecc, CorrectedBits: int32(resp.CorrectedBits),
	}, nil
}

func (s *codecGRPC) Ping(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}
