// Package preview holds the active preview and pushes it to display surfaces.
package preview

import (
	"context"
	"log/slog"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
)

// Controller owns the tri-state preview: exactly one of empty, content
// (rendered or non-visual) or error is current at any time.
//
// A Controller is not safe for concurrent use. It belongs to the session's
// execution context, which is the only place results are applied.
type Controller struct {
	current  domain.Result
	displays []ports.Display
	logger   *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithDisplays attaches display surfaces.
func WithDisplays(displays ...ports.Display) Option {
	return func(c *Controller) {
		c.displays = append(c.displays, displays...)
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController starts out Empty.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		current: domain.Empty(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach adds a display surface and shows it the current preview.
func (c *Controller) Attach(ctx context.Context, d ports.Display) {
	c.displays = append(c.displays, d)
	c.show(ctx, d, c.current)
}

// Apply replaces the current preview wholesale.
func (c *Controller) Apply(ctx context.Context, result domain.Result) {
	c.current = normalize(result)
	for _, d := range c.displays {
		c.show(ctx, d, c.current)
	}
}

// Clear resets the preview to Empty.
func (c *Controller) Clear(ctx context.Context) {
	c.Apply(ctx, domain.Empty())
}

// Current returns the active preview.
func (c *Controller) Current() domain.Result {
	return c.current
}

// Status returns the status-line text for the active preview.
func (c *Controller) Status() string {
	return c.current.Status()
}

func (c *Controller) show(ctx context.Context, d ports.Display, r domain.Result) {
	if err := d.Show(ctx, r); err != nil {
		c.logger.Warn("Display failed", "kind", r.Kind, "err", err)
	}
}

// normalize drops fields that do not belong to the active variant, so a
// result can never carry a node next to an error message.
func normalize(r domain.Result) domain.Result {
	switch r.Kind {
	case domain.KindRendered:
		return domain.Rendered(r.Node, r.TypeName)
	case domain.KindNonVisual:
		return domain.NonVisual(r.TypeName)
	case domain.KindFailed:
		return domain.Failed(r.Message)
	default:
		return domain.Empty()
	}
}
