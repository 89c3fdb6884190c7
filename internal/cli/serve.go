package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/vitrine"
	"github.com/aretw0/vitrine/internal/logging"
	httpAdapter "github.com/aretw0/vitrine/pkg/adapters/http"
	"github.com/aretw0/vitrine/pkg/observability"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/aretw0/vitrine/pkg/preview"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// RunServe starts the HTTP surface and blocks until ctx is done.
func RunServe(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := logging.NewJSON(os.Stderr, level)

	pub, closePub, err := createPublisher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePub()

	engine, handler, err := buildServer(opts, logger, pub)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with the server context instead of holding
		// Shutdown until its deadline.
		BaseContext: func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		return engine.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("Starting Vitrine Server", "addr", srv.Addr, "version", vitrine.Version)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Vitrine Server stopped gracefully")
		return nil
	})
	return g.Wait()
}

// buildServer wires the engine, the event broadcaster and the optional
// metrics registry behind the HTTP handler. The engine is not started.
func buildServer(opts RunOptions, logger *slog.Logger, extra ...ports.Display) (*vitrine.Engine, http.Handler, error) {
	cfg := opts.Config
	events := preview.NewBroadcaster()

	displays := []ports.Display{events}
	for _, d := range extra {
		if d != nil {
			displays = append(displays, d)
		}
	}
	engineOpts := []vitrine.Option{vitrine.WithDisplays(displays...)}
	handlerOpts := []httpAdapter.Option{
		httpAdapter.WithEvents(events),
		httpAdapter.WithValidation(cfg.OpenAPIValidation),
		httpAdapter.WithLogger(logger),
	}

	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m, err := observability.NewMetrics(reg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		engineOpts = append(engineOpts, vitrine.WithLifecycleHooks(m.Hooks()))
		handlerOpts = append(handlerOpts, httpAdapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	engine, err := createEngine(opts, logger, engineOpts...)
	if err != nil {
		return nil, nil, err
	}
	return engine, httpAdapter.NewHandler(engine.Session, handlerOpts...), nil
}
