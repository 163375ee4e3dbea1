package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/jobboard/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Graceful blocks until one of signals arrives, then stops every target in
// order within a shared timeout. Later targets still run if an earlier one fails.
func Graceful(signals []os.Signal, timeout time.Duration, log *logging.Logger, targets ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	Stop(timeout, log, targets...)
}

// Stop shuts down targets in order within timeout
func Stop(timeout time.Duration, log *logging.Logger, targets ...Stoppable) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	failed := 0
	for _, s := range targets {
		if s == nil {
			continue
		}
		if err := s.Shutdown(ctx); err != nil {
			failed++
			log.Warn("graceful shutdown step completed with error", "err", err)
		}
	}

	if failed == 0 {
		log.Info("graceful shutdown completed successfully")
	}
}

// Func adapts a plain function into a Stoppable
type Func func(ctx context.Context) error

func (f Func) Shutdown(ctx context.Context) error {
	return f(ctx)
}
