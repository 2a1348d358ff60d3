package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/autoresum/autoresum-web/pkg/logger"
)

const (
	defaultBuffer     = 16
	defaultPendingMax = 8
	defaultPendingTTL = 30 * time.Second
)

// Broker fans messages out to the subscriptions of their recipient within
// this process. A subscriber that falls behind loses messages instead of
// blocking publishers.
//
// Messages for a recipient with no live subscription are held in a small
// pending queue and handed to the next subscription of that recipient.
// The queue keeps at most pendingMax messages per recipient, each for
// pendingTTL.
type Broker struct {
	logger     *slog.Logger
	clock      clockwork.Clock
	subs       map[string]map[*Subscription]struct{}
	pending    map[string][]pendingMessage
	lastSweep  time.Time
	buffer     int
	pendingMax int
	pendingTTL time.Duration
	mu         sync.RWMutex
}

type pendingMessage struct {
	msg     Message
	expires time.Time
}

// Subscription receives the messages of one recipient.
type Subscription struct {
	ch        chan Message
	broker    *Broker
	recipient string
	once      sync.Once
}

// BrokerOption configures a Broker.
type BrokerOption func(*Broker)

// WithBuffer sets the per-subscription buffer size.
func WithBuffer(n int) BrokerOption {
	return func(b *Broker) {
		if n > 0 {
			b.buffer = n
		}
	}
}

// WithBrokerLogger sets the broker logger.
func WithBrokerLogger(l *slog.Logger) BrokerOption {
	return func(b *Broker) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithPending bounds the queue of messages published while a recipient has
// no subscription. n <= 0 disables the queue.
func WithPending(n int, ttl time.Duration) BrokerOption {
	return func(b *Broker) {
		b.pendingMax = n
		if ttl > 0 {
			b.pendingTTL = ttl
		}
	}
}

// WithBrokerClock sets the clock used to expire pending messages.
func WithBrokerClock(c clockwork.Clock) BrokerOption {
	return func(b *Broker) {
		if c != nil {
			b.clock = c
		}
	}
}

// NewBroker creates an empty broker.
func NewBroker(opts ...BrokerOption) *Broker {
	b := &Broker{
		logger:     logger.NewNope(),
		clock:      clockwork.NewRealClock(),
		subs:       make(map[string]map[*Subscription]struct{}),
		pending:    make(map[string][]pendingMessage),
		buffer:     defaultBuffer,
		pendingMax: defaultPendingMax,
		pendingTTL: defaultPendingTTL,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a subscription for recipient. Pending messages of the
// recipient that have not expired are delivered to it first. Call Close when
// done.
func (b *Broker) Subscribe(recipient string) *Subscription {
	s := &Subscription{
		ch:        make(chan Message, b.buffer),
		broker:    b,
		recipient: recipient,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.subs[recipient]
	if !ok {
		set = make(map[*Subscription]struct{})
		b.subs[recipient] = set
	}
	set[s] = struct{}{}

	now := b.clock.Now()
	for _, p := range b.pending[recipient] {
		if !now.Before(p.expires) {
			continue
		}
		select {
		case s.ch <- p.msg:
		default:
		}
	}
	delete(b.pending, recipient)
	return s
}

// Publish delivers msg to every subscription of its recipient. When the
// recipient has no subscription the message is queued for the next one.
func (b *Broker) Publish(ctx context.Context, msg Message) error {
	if msg.Recipient == "" {
		return ErrNoRecipient
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	set := b.subs[msg.Recipient]
	if len(set) == 0 {
		b.enqueue(msg)
		return nil
	}
	for s := range set {
		select {
		case s.ch <- msg:
		default:
			b.logger.WarnContext(ctx, "dropping notification, subscriber buffer full",
				slog.String("recipient", msg.Recipient),
			)
		}
	}
	return nil
}

// enqueue must be called with b.mu held.
func (b *Broker) enqueue(msg Message) {
	if b.pendingMax <= 0 {
		return
	}
	now := b.clock.Now()
	b.sweep(now)

	q := b.pending[msg.Recipient]
	q = append(q, pendingMessage{msg: msg, expires: now.Add(b.pendingTTL)})
	if len(q) > b.pendingMax {
		q = q[len(q)-b.pendingMax:]
	}
	b.pending[msg.Recipient] = q
}

// sweep drops expired pending messages, at most once per TTL.
func (b *Broker) sweep(now time.Time) {
	if now.Sub(b.lastSweep) < b.pendingTTL {
		return
	}
	b.lastSweep = now
	for recipient, q := range b.pending {
		live := q[:0]
		for _, p := range q {
			if now.Before(p.expires) {
				live = append(live, p)
			}
		}
		if len(live) == 0 {
			delete(b.pending, recipient)
			continue
		}
		b.pending[recipient] = live
	}
}

// Deliver is Publish without the error, for use as a bus callback.
func (b *Broker) Deliver(msg Message) {
	_ = b.Publish(context.Background(), msg)
}

// Subscribers returns the number of live subscriptions for recipient.
func (b *Broker) Subscribers(recipient string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[recipient])
}

// Pending returns the number of queued messages for recipient, expired
// ones included until the next sweep.
func (b *Broker) Pending(recipient string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.pending[recipient])
}

// C returns the message channel. It is closed by Close.
func (s *Subscription) C() <-chan Message {
	return s.ch
}

// Close unregisters the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		b := s.broker
		b.mu.Lock()
		defer b.mu.Unlock()
		if set, ok := b.subs[s.recipient]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(b.subs, s.recipient)
			}
		}
		close(s.ch)
	})
}
