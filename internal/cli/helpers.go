package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// ReportSignal prints which signal stopped sc, if any.
func ReportSignal(w io.Writer, sc *SignalContext) {
	if sig := sc.Signal(); sig != nil {
		printSystemMessage(w, "Received %v, shutting down.", sig)
	}
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the Stdout preview).
func createLogger(debug bool) *slog.Logger {
	return logging.ForDebug(debug)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Start", "run_id", e.RunID, "trigger", e.Trigger, "wrapped", e.Wrapped)
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Complete", "run_id", e.RunID, "kind", e.Kind, "type", e.TypeName, "duration", e.Duration)
		},
		OnScheduled: func(ctx context.Context, e *domain.DebounceEvent) {
			logger.Debug("Run Scheduled", "token", e.Token, "delay", e.Delay)
		},
		OnCancelled: func(ctx context.Context, e *domain.DebounceEvent) {
			logger.Debug("Run Superseded", "token", e.Token)
		},
	}
}
