// Package events forwards store change notifications to an external bus so
// other services can react to writes without polling the medium.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pgdem/desporto/go/internal/store"
	"github.com/rs/zerolog/log"
)

// DefaultSubjectPrefix is prepended to the collection name of every change
const DefaultSubjectPrefix = "pgdem.changes"

// Publisher sends one message to subject
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Forwarder queues broker changes and publishes them from its own goroutine so
// store writes never wait on the network.
type Forwarder struct {
	pub    Publisher
	prefix string
	queue  chan store.Change

	mu      sync.Mutex
	dropped int
}

// NewForwarder creates a Forwarder with room for buffer pending changes
func NewForwarder(pub Publisher, prefix string, buffer int) *Forwarder {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &Forwarder{
		pub:    pub,
		prefix: prefix,
		queue:  make(chan store.Change, buffer),
	}
}

// Attach subscribes to every collection on b and returns the unsubscribe func
func (f *Forwarder) Attach(b *store.Broker) func() {
	return b.SubscribeAll(f.enqueue)
}

// Subject returns the subject a change to collection is published on
func (f *Forwarder) Subject(collection string) string {
	return fmt.Sprintf("%s.%s", f.prefix, collection)
}

// Dropped returns how many changes were discarded because the queue was full
func (f *Forwarder) Dropped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

func (f *Forwarder) enqueue(c store.Change) {
	select {
	case f.queue <- c:
	default:
		f.mu.Lock()
		f.dropped++
		f.mu.Unlock()
		log.Warn().Str("collection", c.Collection).Msg("change queue full, dropping event")
	}
}

// Run publishes queued changes until ctx is cancelled
func (f *Forwarder) Run(ctx context.Context) {
	log.Info().Str("prefix", f.prefix).Msg("change forwarder started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("change forwarder shutting down")
			return
		case c := <-f.queue:
			if err := f.publish(ctx, c); err != nil {
				log.Error().Err(err).Str("collection", c.Collection).Msg("failed to forward change")
			}
		}
	}
}

func (f *Forwarder) publish(ctx context.Context, c store.Change) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	return f.pub.Publish(ctx, f.Subject(c.Collection), data)
}
