package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/mcp"
	"github.com/honeycarbs/jobboard/pkg/logging"
	"github.com/honeycarbs/jobboard/pkg/shutdown"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res, cleanup, err := mcp.InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}

	srv := mcp.NewServer(logger, cfg, res)

	if err := res.Scheduler.Start(ctx); err != nil {
		logger.Error("failed to start refresh scheduler", "err", err)
		cleanup()
		os.Exit(1)
	}

	// scheduler before stores so no refresh writes to a closed connection
	closeStores := shutdown.Func(func(context.Context) error {
		cleanup()
		return nil
	})

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		shutdown.Graceful(
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			10*time.Second,
			logger,
			srv,
			res.Scheduler,
			closeStores,
		)
	}()

	logger.Info("MCP server initialized and starting",
		"addr", net.JoinHostPort(cfg.Host, cfg.Port),
		"store", cfg.StoreBackend,
		"refresh_interval", cfg.Refresh.Interval,
	)

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
		shutdown.Stop(10*time.Second, logger, res.Scheduler, closeStores)
		_ = logger.Sync()
		os.Exit(1)
	}

	<-stopped
	logger.Info("MCP server stopped")
}
