package server

import (
	"net"

	"github.com/MKhiriev/go-access-portal/internal/config"
	myGRPC "github.com/MKhiriev/go-access-portal/internal/handler/grpc"
	"github.com/MKhiriev/go-access-portal/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	address string
	server  *grpc.Server

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		address: cfg.GRPCAddress,
		server:  server,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer() {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		g.logger.Error().Msgf("gRPC server Listen: %v", err)
		return
	}

	if err = g.server.Serve(listener); err != nil {
		g.logger.Error().Msgf("gRPC server Serve: %v", err)
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.server.GracefulStop()
}
