package vitrine

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/debounce"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/markup"
	"github.com/aretw0/vitrine/pkg/pipeline"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/aretw0/vitrine/pkg/session"
	"github.com/aretw0/vitrine/pkg/templates"
)

// Engine wires the default parser, the pipeline and a session together.
type Engine struct {
	Parser   ports.Parser
	Pipeline *pipeline.Pipeline
	Session  *session.Session

	delay     time.Duration
	prefs     domain.Preferences
	document  *string
	template  string
	displays  []ports.Display
	hooks     domain.LifecycleHooks
	afterFunc debounce.AfterFunc
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithParser replaces the default markup parser.
func WithParser(p ports.Parser) Option {
	return func(e *Engine) {
		e.Parser = p
	}
}

// WithDelay sets the debounce window.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.delay = d
	}
}

// WithPreferences sets the initial auto-run and wrap toggles.
func WithPreferences(p domain.Preferences) Option {
	return func(e *Engine) {
		e.prefs = p
	}
}

// WithDocument sets the initial document. It takes precedence over WithTemplate.
func WithDocument(text string) Option {
	return func(e *Engine) {
		e.document = &text
	}
}

// WithTemplate starts from a named starter template (default "button").
// An empty name starts from an empty document.
func WithTemplate(name string) Option {
	return func(e *Engine) {
		e.template = name
	}
}

// WithDisplays attaches display surfaces.
func WithDisplays(displays ...ports.Display) Option {
	return func(e *Engine) {
		e.displays = append(e.displays, displays...)
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls merge.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithAfterFunc replaces the debounce clock.
func WithAfterFunc(fn debounce.AfterFunc) Option {
	return func(e *Engine) {
		e.afterFunc = fn
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine. The session does nothing until Run is called.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		delay:    debounce.DefaultDelay,
		prefs:    domain.DefaultPreferences(),
		template: templates.Default,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Parser == nil {
		e.Parser = markup.NewParser()
	}

	doc := ""
	switch {
	case e.document != nil:
		doc = *e.document
	case e.template != "":
		body, err := templates.Body(e.template)
		if err != nil {
			return nil, err
		}
		doc = body
	}

	e.Pipeline = pipeline.New(e.Parser,
		pipeline.WithLifecycleHooks(e.hooks),
		pipeline.WithLogger(e.logger),
	)

	sessionOpts := []session.Option{
		session.WithDelay(e.delay),
		session.WithPreferences(e.prefs),
		session.WithDocument(doc),
		session.WithDisplays(e.displays...),
		session.WithLifecycleHooks(e.hooks),
		session.WithLogger(e.logger),
	}
	if e.afterFunc != nil {
		sessionOpts = append(sessionOpts, session.WithAfterFunc(e.afterFunc))
	}
	if e.prefs.AutoRun {
		sessionOpts = append(sessionOpts, session.WithInitialRun())
	}
	e.Session = session.New(e.Pipeline, sessionOpts...)
	return e, nil
}

// Run drives the session until ctx is done. When auto-run is on, the initial
// document is evaluated before any edit so displays start with its preview.
func (e *Engine) Run(ctx context.Context) error {
	return e.Session.Run(ctx)
}

// Preview evaluates document once with the default parser.
func Preview(ctx context.Context, document string, wrap bool) domain.Result {
	return pipeline.New(markup.NewParser()).Run(ctx, document, wrap)
}
