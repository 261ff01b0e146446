package store

import (
	"sync"
	"time"
)

// Change is emitted after every successful write to a collection. It carries no
// records; subscribers re-query the store for the new state.
type Change struct {
	Collection string    `json:"collection"`
	At         time.Time `json:"at"`
}

// Handler receives change notifications
type Handler func(Change)

type subscription struct {
	id         uint64
	collection string // empty means every collection
	fn         Handler
}

// Broker fans change events out to subscribers keyed by collection name.
// Delivery is synchronous, in emission order, without acknowledgement.
type Broker struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

// NewBroker creates an empty Broker
func NewBroker() *Broker {
	return &Broker{}
}

// Subscribe registers fn for changes to a single collection and returns a func
// that removes the subscription.
func (b *Broker) Subscribe(collection string, fn Handler) func() {
	return b.add(collection, fn)
}

// SubscribeAll registers fn for changes to any collection
func (b *Broker) SubscribeAll(fn Handler) func() {
	return b.add("", fn)
}

func (b *Broker) add(collection string, fn Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, collection: collection, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Broker) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers c to every matching subscriber in registration order
func (b *Broker) Publish(c Change) {
	b.mu.RLock()
	targets := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.collection == "" || s.collection == c.Collection {
			targets = append(targets, s.fn)
		}
	}
	b.mu.RUnlock()

	for _, fn := range targets {
		fn(c)
	}
}
