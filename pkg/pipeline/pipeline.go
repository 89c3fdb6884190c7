// Package pipeline turns a document into a preview result: optional namespace
// injection, one parse attempt, and classification of whatever came back.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/inject"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/google/uuid"
)

// Pipeline is a total function from document to domain.Result.
// No parser fault, error or panic escapes Run.
type Pipeline struct {
	parser ports.Parser
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Pipeline) {
		p.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a pipeline around parser.
func New(parser ports.Parser, opts ...Option) *Pipeline {
	p := &Pipeline{
		parser: parser,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run evaluates document once.
func (p *Pipeline) Run(ctx context.Context, document string, wrap bool) domain.Result {
	return p.RunWith(ctx, document, wrap, domain.TriggerManual)
}

// RunWith is Run with the trigger recorded in lifecycle events.
func (p *Pipeline) RunWith(ctx context.Context, document string, wrap bool, trigger domain.Trigger) domain.Result {
	if strings.TrimSpace(document) == "" {
		return domain.Empty()
	}

	text := document
	if wrap {
		text = inject.Inject(document)
	}

	event := &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: p.now(), Type: domain.EventRunStart},
		RunID:     uuid.NewString(),
		Trigger:   trigger,
		Wrapped:   text != document,
	}
	if p.hooks.OnRunStart != nil {
		p.hooks.OnRunStart(ctx, event)
	}

	start := p.now()
	result := p.parse(text)

	done := *event
	done.EventBase = domain.EventBase{Timestamp: p.now(), Type: domain.EventRunComplete}
	done.Kind = result.Kind
	done.TypeName = result.TypeName
	done.Duration = p.now().Sub(start)
	if p.hooks.OnRunComplete != nil {
		p.hooks.OnRunComplete(ctx, &done)
	}

	if result.Kind == domain.KindFailed {
		p.logger.Debug("Parse failed", "run_id", event.RunID, "err", result.Message)
	} else {
		p.logger.Debug("Parsed", "run_id", event.RunID, "kind", result.Kind, "type", result.TypeName)
	}
	return result
}

func (p *Pipeline) parse(text string) (result domain.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.Failed(fmt.Sprintf("parser panic: %v", r))
		}
	}()

	value, err := p.parser.Parse(text)
	if err != nil {
		return domain.Failed(domain.NewParseFailure(err).Error())
	}
	return Classify(value)
}

// Classify maps a parsed value to its preview variant.
func Classify(value any) domain.Result {
	if isNil(value) {
		return domain.Failed(domain.ErrNoValue.Error())
	}
	name := TypeName(value)
	if _, ok := value.(ports.Visual); ok {
		return domain.Rendered(value, name)
	}
	return domain.NonVisual(name)
}

// TypeName returns the display name of a parsed value.
func TypeName(value any) string {
	if n, ok := value.(ports.TypeNamer); ok {
		return n.TypeName()
	}
	t := reflect.TypeOf(value)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
