package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/pgdem/desporto/go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []message
}

func (p *fakePublisher) Publish(_ context.Context, subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, message{subject: subject, data: data})
	return nil
}

func (p *fakePublisher) snapshot() []message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]message(nil), p.msgs...)
}

func TestForwarderPublishesChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub := &fakePublisher{}
	f := NewForwarder(pub, "", 16)
	b := store.NewBroker()
	stop := f.Attach(b)
	defer stop()
	go f.Run(ctx)

	at := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	b.Publish(store.Change{Collection: store.Games, At: at})
	b.Publish(store.Change{Collection: store.Athletes, At: at})

	require.Eventually(t, func() bool { return len(pub.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	msgs := pub.snapshot()
	assert.Equal(t, "pgdem.changes.games", msgs[0].subject)
	assert.Equal(t, "pgdem.changes.athletes", msgs[1].subject)

	var got store.Change
	require.NoError(t, json.Unmarshal(msgs[0].data, &got))
	assert.Equal(t, store.Games, got.Collection)
	assert.True(t, at.Equal(got.At))
}

func TestForwarderDropsWhenFull(t *testing.T) {
	f := NewForwarder(&fakePublisher{}, "custom", 1)
	b := store.NewBroker()
	f.Attach(b)

	b.Publish(store.Change{Collection: store.Games})
	b.Publish(store.Change{Collection: store.Games})

	assert.Equal(t, 1, f.Dropped())
	assert.Equal(t, "custom.users", f.Subject(store.Users))
}
