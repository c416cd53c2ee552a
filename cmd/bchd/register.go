package main

import (
	"google.golang.org/grpc"

	"github.com/litebch/litebch-go/internal/svc"
)

// registerCodec is a variable set by the grpc-tagged build to register the real gRPC service.
// By default (no grpcproto tag), it is a no-op so the binary builds without generated protos.
var registerCodec = func(_ *grpc.Server, _ *svc.CodecServer) {}
