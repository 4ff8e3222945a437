package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/auditlens/auditlens/internal/config"
	"github.com/auditlens/auditlens/internal/stubapi"
	"github.com/auditlens/auditlens/pkg/log"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		panic(err)
	}

	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	zap.S().Named("stub_api").Info("starting stub analytics service")
	defer zap.S().Named("stub_api").Info("stub analytics service stopped")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	listener, err := net.Listen("tcp", cfg.Stub.Address)
	if err != nil {
		zap.S().Named("stub_api").Fatalf("creating listener: %s", err)
	}

	server := stubapi.New(listener)
	if err := server.Run(ctx); err != nil {
		zap.S().Named("stub_api").Fatalf("running server: %s", err)
	}
}
