package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"shogi/internal/bootstrap"
	"shogi/internal/engine"
	"shogi/internal/server/rpc"
)

func main() {
	cfgPath := flag.String("config", "", "path to config.yaml")
	addr := flag.String("addr", "", "listen address, overrides rpc.addr")
	flag.Parse()

	cfg, err := bootstrap.Setup(*cfgPath)
	if err != nil {
		bootstrap.NewLogger(false).Fatalw("failed to load config", "err", err)
	}
	if *addr != "" {
		cfg.RPC.Addr = *addr
	}
	log := bootstrap.NewLogger(cfg.Log.Debug)
	defer func() { _ = log.Sync() }()

	eng := engine.NewEngine(cfg.Engine.Seed)
	eng.Strict = cfg.Engine.Strict
	srv := rpc.NewGRPCServer(rpc.NewServer(eng, log))

	lis, err := net.Listen("tcp", cfg.RPC.Addr)
	if err != nil {
		log.Fatalw("failed to listen", "addr", cfg.RPC.Addr, "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Infow("shutting down")
		srv.GracefulStop()
	}()

	log.Infow("engine rpc listening", "addr", cfg.RPC.Addr, "strict", eng.Strict)
	if err := srv.Serve(lis); err != nil {
		log.Errorw("rpc server stopped", "err", err)
	}
}
