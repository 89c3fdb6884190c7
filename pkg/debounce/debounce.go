// Package debounce turns a stream of edit notifications into a single delayed,
// cancellable re-evaluation.
package debounce

import (
	"time"
)

// DefaultDelay is the quiescence window used by the playground.
const DefaultDelay = 400 * time.Millisecond

// Token identifies one pending delayed evaluation. Zero is never live.
type Token uint64

// Timer is the subset of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// AfterFunc arms f to run once after d on another goroutine.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Scheduler keeps at most one live token.
//
// It is owned by a single execution context: Trigger, Cancel, Pending and
// Live must be called from it, and fire is always invoked on it through
// post. Timer goroutines never touch scheduler state; they only post the
// token they were armed with, and the owner drops it if it is no longer live.
type Scheduler struct {
	delay     time.Duration
	post      func(func())
	fire      func(Token)
	afterFunc AfterFunc

	gen   Token
	live  Token
	timer Timer

	OnArm    func(tok Token, delay time.Duration)
	OnCancel func(tok Token)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithAfterFunc replaces time.AfterFunc, e.g. with a manual clock in tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Scheduler) {
		s.afterFunc = fn
	}
}

// NewScheduler creates a scheduler that calls fire(tok) on the owning
// context, reached through post, once delay has elapsed without a newer
// Trigger. A non-positive delay falls back to DefaultDelay.
func NewScheduler(delay time.Duration, post func(func()), fire func(Token), opts ...Option) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	s := &Scheduler{
		delay:     delay,
		post:      post,
		fire:      fire,
		afterFunc: realAfterFunc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delay returns the quiescence window.
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Trigger invalidates the live token, if any, and arms a new one.
// The old token is dead before the new timer exists.
func (s *Scheduler) Trigger() Token {
	s.Cancel()

	s.gen++
	tok := s.gen
	s.live = tok
	s.timer = s.afterFunc(s.delay, func() {
		s.post(func() { s.elapse(tok) })
	})
	if s.OnArm != nil {
		s.OnArm(tok, s.delay)
	}
	return tok
}

// Cancel invalidates the live token. It is a no-op when nothing is pending.
func (s *Scheduler) Cancel() {
	if s.live == 0 {
		return
	}
	old := s.live
	s.live = 0
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.OnCancel != nil {
		s.OnCancel(old)
	}
}

// Pending reports whether a token is live.
func (s *Scheduler) Pending() bool {
	return s.live != 0
}

// Live reports whether tok is the current live token.
func (s *Scheduler) Live(tok Token) bool {
	return tok != 0 && tok == s.live
}

// elapse runs on the owning context. Stale tokens are dropped.
func (s *Scheduler) elapse(tok Token) {
	if !s.Live(tok) {
		return
	}
	s.live = 0
	s.timer = nil
	s.fire(tok)
}
