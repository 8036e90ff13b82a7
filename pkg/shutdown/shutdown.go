package shutdown

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func CreateGracefulShutdownChannel() chan os.Signal {
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	return gracefulShutdown
}

// ListenForShutdown blocks until a signal arrives on notify or done is closed, runs callback,
// and then waits up to timeout for callback's work to drain.
func ListenForShutdown(notify chan os.Signal, done chan bool, callback func(), timeout time.Duration, l *zap.Logger) {
	select {
	case sig := <-notify:
		l.Sugar().Infow("Received shutdown signal", zap.String("signal", sig.String()))
	case <-done:
		l.Sugar().Info("Shutdown requested")
	}

	finished := make(chan struct{})
	go func() {
		callback()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(timeout):
		l.Sugar().Warnw("Timed out waiting for shutdown", zap.Duration("timeout", timeout))
	}
}
