package preview

import (
	"context"
	"sync"

	"github.com/aretw0/vitrine/pkg/domain"
)

// Broadcaster fans applied results out to subscribers.
// Each subscriber holds at most one undelivered result; a newer result
// replaces it, so slow readers only ever see the latest preview.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan domain.Result]struct{}
	latest domain.Result
}

// NewBroadcaster creates a broadcaster whose latest result is Empty.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs:   make(map[chan domain.Result]struct{}),
		latest: domain.Empty(),
	}
}

// Show publishes result to every subscriber without blocking.
func (b *Broadcaster) Show(_ context.Context, result domain.Result) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest = result
	for ch := range b.subs {
		select {
		case <-ch:
		default:
		}
		ch <- result
	}
	return nil
}

// Latest returns the last published result.
func (b *Broadcaster) Latest() domain.Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest
}

// Subscribe returns a channel that first yields the latest result and then
// every subsequent one. The channel is closed when ctx is done.
func (b *Broadcaster) Subscribe(ctx context.Context) <-chan domain.Result {
	ch := make(chan domain.Result, 1)

	b.mu.Lock()
	ch <- b.latest
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()
	return ch
}

// Subscribers returns the number of active subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
