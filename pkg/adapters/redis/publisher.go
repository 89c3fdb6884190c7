package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/preview"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel previews are published on.
const DefaultChannel = "vitrine:preview"

// DefaultWriteTimeout bounds a single Show. Show runs on the session loop, so
// a stalled server must not hold back the next preview.
const DefaultWriteTimeout = 2 * time.Second

// ErrNoPreview is returned by Latest when nothing was published yet (or the
// last preview expired).
var ErrNoPreview = errors.New("no preview published")

// Message is the payload published for every applied result.
type Message struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Preview   preview.View `json:"preview"`
}

// Publisher is a display surface that mirrors the preview into Redis: the
// latest message is stored under a key for late readers and every message is
// published on a channel for live ones.
type Publisher struct {
	client  *backend.Client
	channel string
	prefix  string
	ttl     time.Duration
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithChannel sets the pub/sub channel.
func WithChannel(channel string) Option {
	return func(p *Publisher) {
		p.channel = channel
	}
}

// WithPrefix sets the key prefix (default "vitrine:").
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithTTL expires the stored latest preview. Zero keeps it forever.
func WithTTL(ttl time.Duration) Option {
	return func(p *Publisher) {
		p.ttl = ttl
	}
}

// WithWriteTimeout bounds each Show (default DefaultWriteTimeout).
// Zero or negative disables the bound.
func WithWriteTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.timeout = d
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New connects to the Redis server at url (redis://host:port/db).
func New(url string, opts ...Option) (*Publisher, error) {
	o, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	o.ContextTimeoutEnabled = true
	return NewFromClient(backend.NewClient(o), opts...), nil
}

// NewFromClient wraps an existing client. The write timeout only applies when
// the client was built with ContextTimeoutEnabled.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:  client,
		channel: DefaultChannel,
		prefix:  "vitrine:",
		timeout: DefaultWriteTimeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Channel returns the pub/sub channel.
func (p *Publisher) Channel() string {
	return p.channel
}

// Ping checks connectivity.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// Show stores and publishes result atomically.
func (p *Publisher) Show(ctx context.Context, result domain.Result) error {
	payload, err := json.Marshal(Message{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Preview:   preview.NewView(result),
	})
	if err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	pipe := p.client.TxPipeline()
	pipe.Set(ctx, p.latestKey(), payload, p.ttl)
	pipe.Publish(ctx, p.channel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish preview: %w", err)
	}
	p.logger.Debug("Preview published", "channel", p.channel, "kind", result.Kind)
	return nil
}

// Latest returns the most recently published message.
func (p *Publisher) Latest(ctx context.Context) (Message, error) {
	raw, err := p.client.Get(ctx, p.latestKey()).Bytes()
	if errors.Is(err, backend.Nil) {
		return Message{}, ErrNoPreview
	}
	if err != nil {
		return Message{}, fmt.Errorf("failed to read preview: %w", err)
	}
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Message{}, fmt.Errorf("failed to decode preview: %w", err)
	}
	return msg, nil
}

// Subscribe streams published messages until ctx is done. The subscription is
// confirmed before Subscribe returns, so nothing published afterwards is missed.
func (p *Publisher) Subscribe(ctx context.Context) (<-chan Message, error) {
	ps := p.client.Subscribe(ctx, p.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan Message)
	go func() {
		defer close(out)
		defer ps.Close()
		in := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-in:
				if !ok {
					return
				}
				var msg Message
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					p.logger.Warn("Dropping malformed preview message", "err", err)
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (p *Publisher) latestKey() string {
	return p.prefix + "latest"
}
