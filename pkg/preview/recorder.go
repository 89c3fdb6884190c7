package preview

import (
	"context"
	"sync"

	"github.com/aretw0/vitrine/pkg/domain"
)

// Recorder is an in-memory display that keeps every result it was shown.
// Safe for concurrent use.
type Recorder struct {
	mu      sync.RWMutex
	history []domain.Result
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Show records result.
func (r *Recorder) Show(_ context.Context, result domain.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, result)
	return nil
}

// Last returns the most recent result, or Empty.
func (r *Recorder) Last() domain.Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.history) == 0 {
		return domain.Empty()
	}
	return r.history[len(r.history)-1]
}

// History returns a copy of every recorded result.
func (r *Recorder) History() []domain.Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Result, len(r.history))
	copy(out, r.history)
	return out
}

// Len returns the number of recorded results.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.history)
}
