package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/debounce"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/pipeline"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/aretw0/vitrine/pkg/preview"
	"github.com/aretw0/vitrine/pkg/templates"
)

// DefaultQueueSize is the number of pending operations the loop buffers.
const DefaultQueueSize = 64

// Snapshot is a consistent view of the session taken on its loop.
type Snapshot struct {
	Document    string             `json:"document"`
	Preferences domain.Preferences `json:"preferences"`
	Result      domain.Result      `json:"result"`
	Status      string             `json:"status"`
	Pending     bool               `json:"pending"`
	Runs        uint64             `json:"runs"`
}

// Session is the live preview engine bound to one document.
type Session struct {
	work chan func()
	done chan struct{}

	// Owned by the loop.
	ctx   context.Context
	doc   string
	prefs domain.Preferences
	runs  uint64
	sched *debounce.Scheduler
	pipe  *pipeline.Pipeline
	ctrl  *preview.Controller

	delay     time.Duration
	afterFunc debounce.AfterFunc
	displays  []ports.Display
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	initialRun bool
}

// Option configures a Session.
type Option func(*Session)

// WithDelay sets the quiescence window.
func WithDelay(d time.Duration) Option {
	return func(s *Session) {
		s.delay = d
	}
}

// WithPreferences sets the initial preferences.
func WithPreferences(p domain.Preferences) Option {
	return func(s *Session) {
		s.prefs = p
	}
}

// WithDocument sets the initial document without scheduling a run.
func WithDocument(text string) Option {
	return func(s *Session) {
		s.doc = text
	}
}

// WithInitialRun evaluates the initial document when Run starts, before any
// posted operation.
func WithInitialRun() Option {
	return func(s *Session) {
		s.initialRun = true
	}
}

// WithDisplays attaches display surfaces to the preview controller.
func WithDisplays(displays ...ports.Display) Option {
	return func(s *Session) {
		s.displays = append(s.displays, displays...)
	}
}

// WithLifecycleHooks registers debounce hooks (OnScheduled, OnCancelled).
// Run hooks belong to the pipeline.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithAfterFunc replaces the debounce clock.
func WithAfterFunc(fn debounce.AfterFunc) Option {
	return func(s *Session) {
		s.afterFunc = fn
	}
}

// New creates a session. Nothing happens until Run is called.
func New(pipe *pipeline.Pipeline, opts ...Option) *Session {
	s := &Session{
		work:   make(chan func(), DefaultQueueSize),
		done:   make(chan struct{}),
		ctx:    context.Background(),
		prefs:  domain.DefaultPreferences(),
		pipe:   pipe,
		delay:  debounce.DefaultDelay,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ctrl = preview.NewController(
		preview.WithDisplays(s.displays...),
		preview.WithLogger(s.logger),
	)

	var schedOpts []debounce.Option
	if s.afterFunc != nil {
		schedOpts = append(schedOpts, debounce.WithAfterFunc(s.afterFunc))
	}
	s.sched = debounce.NewScheduler(s.delay, func(f func()) { _ = s.post(f) }, s.fire, schedOpts...)
	s.sched.OnArm = func(tok debounce.Token, d time.Duration) {
		if s.hooks.OnScheduled != nil {
			s.hooks.OnScheduled(s.ctx, &domain.DebounceEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventScheduled},
				Token:     uint64(tok),
				Delay:     d,
			})
		}
	}
	s.sched.OnCancel = func(tok debounce.Token) {
		if s.hooks.OnCancelled != nil {
			s.hooks.OnCancelled(s.ctx, &domain.DebounceEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCancelled},
				Token:     uint64(tok),
			})
		}
	}
	return s
}

// Run processes posted operations until ctx is done. It must be called once.
func (s *Session) Run(ctx context.Context) error {
	s.ctx = ctx
	defer close(s.done)
	defer s.sched.Cancel()

	s.logger.Debug("Session started", "delay", s.delay, "auto_run", s.prefs.AutoRun, "wrap", s.prefs.Wrap)
	if s.initialRun {
		s.run(domain.TriggerStartup)
	}
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Session stopped", "runs", s.runs)
			return nil
		case f := <-s.work:
			f()
		}
	}
}

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Edit replaces the document. With auto-run on, it re-arms the debounce
// window; otherwise it only updates the text.
func (s *Session) Edit(text string) error {
	return s.post(func() {
		s.doc = text
		if s.prefs.AutoRun {
			s.sched.Trigger()
		}
	})
}

// RunNow evaluates the current document immediately, superseding any
// pending debounced run.
func (s *Session) RunNow() error {
	return s.post(func() {
		s.sched.Cancel()
		s.run(domain.TriggerManual)
	})
}

// Clear empties the document and resets the preview.
func (s *Session) Clear() error {
	return s.post(func() {
		s.sched.Cancel()
		s.doc = ""
		s.ctrl.Clear(s.ctx)
	})
}

// SetAutoRun toggles debounced evaluation. Turning it off drops a pending run.
func (s *Session) SetAutoRun(on bool) error {
	return s.post(func() {
		s.prefs.AutoRun = on
		if !on {
			s.sched.Cancel()
		}
	})
}

// SetWrap toggles namespace injection for subsequent runs.
func (s *Session) SetWrap(on bool) error {
	return s.post(func() {
		s.prefs.Wrap = on
	})
}

// SetPreferences replaces both toggles at once.
func (s *Session) SetPreferences(p domain.Preferences) error {
	return s.post(func() {
		s.prefs = p
		if !p.AutoRun {
			s.sched.Cancel()
		}
	})
}

// LoadTemplate replaces the document with a starter template. It is an edit
// like any other.
func (s *Session) LoadTemplate(name string) error {
	body, err := templates.Body(name)
	if err != nil {
		return err
	}
	return s.Edit(body)
}

// Snapshot waits for every previously posted operation and returns the state.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	err := s.post(func() {
		reply <- Snapshot{
			Document:    s.doc,
			Preferences: s.prefs,
			Result:      s.ctrl.Current(),
			Status:      s.ctrl.Status(),
			Pending:     s.sched.Pending(),
			Runs:        s.runs,
		}
	})
	if err != nil {
		return Snapshot{}, err
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-s.done:
		return Snapshot{}, domain.ErrSessionClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Attach adds a display surface and shows it the current preview.
func (s *Session) Attach(d ports.Display) error {
	return s.post(func() {
		s.ctrl.Attach(s.ctx, d)
	})
}

func (s *Session) post(f func()) error {
	select {
	case <-s.done:
		return domain.ErrSessionClosed
	default:
	}
	select {
	case s.work <- f:
		return nil
	case <-s.done:
		return domain.ErrSessionClosed
	}
}

func (s *Session) fire(tok debounce.Token) {
	s.logger.Debug("Debounce elapsed", "token", tok)
	s.run(domain.TriggerDebounce)
}

func (s *Session) run(trigger domain.Trigger) {
	result := s.pipe.RunWith(s.ctx, s.doc, s.prefs.Wrap, trigger)
	s.runs++
	s.ctrl.Apply(s.ctx, result)
}
