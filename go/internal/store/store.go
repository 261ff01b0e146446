package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
)

// DefaultPrefix namespaces every key with the schema version so incompatible
// layout changes never read older data.
const DefaultPrefix = "pgdem_v1_"

// Collection names
const (
	Users          = "users"
	Games          = "games"
	Athletes       = "athletes"
	Schools        = "schools"
	Audit          = "audit"
	Municipalities = "municipalities"
	Modalities     = "modalities"
	AgeGroups      = "ageGroups"
	Infra          = "infra"
	Announcements  = "announcements"
	Notifications  = "notifications"
)

// AllCollections lists every collection the application persists
var AllCollections = []string{
	Users, Games, Athletes, Schools, Audit, Municipalities,
	Modalities, AgeGroups, Infra, Announcements, Notifications,
}

// Store maps named collections onto a Medium and announces writes on a Broker
type Store struct {
	medium Medium
	broker *Broker
	prefix string
	clock  clockwork.Clock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Store
type Option func(*Store)

// WithPrefix overrides DefaultPrefix
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithClock sets the clock used to stamp change events
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// NewStore creates a Store over medium. A nil broker gets a private one.
func NewStore(medium Medium, broker *Broker, opts ...Option) *Store {
	if broker == nil {
		broker = NewBroker()
	}
	s := &Store{
		medium: medium,
		broker: broker,
		prefix: DefaultPrefix,
		clock:  clockwork.NewRealClock(),
		locks:  make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Broker returns the broker change events are published on
func (s *Store) Broker() *Broker {
	return s.broker
}

// Key returns the medium key for a collection
func (s *Store) Key(collection string) string {
	return s.prefix + collection
}

// Reset clears the medium. Every collection is reseeded on its next load.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.medium.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	for _, name := range AllCollections {
		s.notify(name)
	}
	return nil
}

// Notify publishes a change for collection without writing. Used to relay
// writes made by other processes sharing the medium.
func (s *Store) Notify(collection string) {
	s.notify(collection)
}

func (s *Store) notify(collection string) {
	s.broker.Publish(Change{Collection: collection, At: s.clock.Now()})
}

func (s *Store) lockFor(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *Store) read(ctx context.Context, collection string) ([]byte, bool, error) {
	blob, ok, err := s.medium.Get(ctx, s.Key(collection))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}
	return blob, ok, nil
}

func (s *Store) write(ctx context.Context, collection string, records any) error {
	blob, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", collection, err)
	}
	if err := s.medium.Set(ctx, s.Key(collection), blob); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	s.notify(collection)
	return nil
}

// Collection is a typed view of one named collection
type Collection[T any] struct {
	store *Store
	name  string
	seed  func() []T
}

// NewCollection binds name on s. seed produces the records persisted on first access;
// it may be nil for collections that start empty.
func NewCollection[T any](s *Store, name string, seed func() []T) *Collection[T] {
	return &Collection[T]{store: s, name: name, seed: seed}
}

// Name returns the collection name
func (c *Collection[T]) Name() string {
	return c.name
}

// Load returns the current ordered records. When the medium holds no data for
// the collection the seed is persisted first and then returned.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	blob, ok, err := c.store.read(ctx, c.name)
	if err != nil {
		return nil, err
	}
	if ok {
		return c.decode(blob)
	}

	l := c.store.lockFor(c.name)
	l.Lock()
	defer l.Unlock()
	return c.loadLocked(ctx)
}

// Save replaces the whole collection and publishes a change. When encoding
// fails nothing is written and the previous state stays intact.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	l := c.store.lockFor(c.name)
	l.Lock()
	defer l.Unlock()
	return c.saveLocked(ctx, records)
}

// Update runs a read-modify-write cycle under the collection's write lock.
// fn receives a copy of the current records; returning an error aborts the write.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	l := c.store.lockFor(c.name)
	l.Lock()
	defer l.Unlock()

	records, err := c.loadLocked(ctx)
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return c.saveLocked(ctx, next)
}

func (c *Collection[T]) loadLocked(ctx context.Context) ([]T, error) {
	blob, ok, err := c.store.read(ctx, c.name)
	if err != nil {
		return nil, err
	}
	if ok {
		return c.decode(blob)
	}

	var seed []T
	if c.seed != nil {
		seed = c.seed()
	}
	if seed == nil {
		seed = []T{}
	}
	if err := c.saveLocked(ctx, seed); err != nil {
		return nil, fmt.Errorf("failed to seed collection %s: %w", c.name, err)
	}
	return seed, nil
}

func (c *Collection[T]) saveLocked(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	return c.store.write(ctx, c.name, records)
}

func (c *Collection[T]) decode(blob []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", c.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
