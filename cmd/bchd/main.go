package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	"github.com/litebch/litebch-go/internal/svc"
)

func main() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-c; os.Exit(0) }()

	srv := svc.NewCodecServer()

	// Prometheus endpoint
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":9090", nil); err != nil {
			fmt.Println("metrics:", err)
		}
	}()

	ln, err := net.Listen("tcp", ":50051")
	if err != nil {
		fmt.Println("listen:", err)
		return
	}
	grpcSrv := grpc.NewServer()
	registerCodec(grpcSrv, srv)
	fmt.Println("bchd gRPC codec service listening on :50051, metrics on :9090")
	if err := grpcSrv.Serve(ln); err != nil {
		fmt.Println("grpc serve:", err)
	}
}
