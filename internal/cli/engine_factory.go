package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/vitrine"
	"github.com/aretw0/vitrine/internal/config"
	"github.com/aretw0/vitrine/pkg/adapters/redis"
	"github.com/aretw0/vitrine/pkg/ports"
)

// RunOptions contains the configuration shared by every command.
type RunOptions struct {
	Config config.Config
	// Path is the document file; "-" reads standard input.
	Path  string
	JSON  bool
	Quiet bool
	Out   io.Writer
}

func (o RunOptions) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// createEngine initializes an engine with standard CLI conventions.
func createEngine(opts RunOptions, logger *slog.Logger, extra ...vitrine.Option) (*vitrine.Engine, error) {
	cfg := opts.Config
	engineOpts := []vitrine.Option{
		vitrine.WithLogger(logger),
		vitrine.WithDelay(cfg.Debounce),
		vitrine.WithPreferences(cfg.Preferences()),
		vitrine.WithTemplate(cfg.Template),
	}
	if cfg.Debug {
		engineOpts = append(engineOpts, vitrine.WithLifecycleHooks(createDebugHooks(logger)))
	}
	engineOpts = append(engineOpts, extra...)

	engine, err := vitrine.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// createPublisher connects the Redis display when configured. It returns a
// nil display and a no-op closer otherwise.
func createPublisher(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.Display, func(), error) {
	if cfg.Redis.URL == "" {
		return nil, func() {}, nil
	}
	pub, err := redis.New(cfg.Redis.URL,
		redis.WithChannel(cfg.Redis.Channel),
		redis.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	if err := pub.Ping(ctx); err != nil {
		_ = pub.Close()
		return nil, nil, fmt.Errorf("redis unreachable: %w", err)
	}
	logger.Info("Publishing previews to Redis", "channel", pub.Channel())
	return pub, func() { _ = pub.Close() }, nil
}

// readDocument reads path, or standard input when path is "-".
func readDocument(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(raw), nil
}
