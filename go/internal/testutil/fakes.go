package testutil

import (
	"context"
	"sync"

	"github.com/pgdem/desporto/go/internal/models"
)

// AuditRecorder captures audit calls in memory
type AuditRecorder struct {
	mu      sync.Mutex
	Entries []Recorded
	Err     error
}

func (r *AuditRecorder) Record(_ context.Context, actor models.User, action, detail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Entries = append(r.Entries, Recorded{ActorID: actor.ID, Action: action, Detail: detail})
	return nil
}

// Actions returns the recorded action names in call order
func (r *AuditRecorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, e.Action)
	}
	return out
}

// Notifier captures notifications in memory
type Notifier struct {
	mu   sync.Mutex
	Sent []models.Notification
}

func (n *Notifier) Notify(_ context.Context, msg models.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, msg)
	return nil
}

// UserLookup resolves fixture users by id
type UserLookup map[string]models.User

// NewUserLookup indexes users by id
func NewUserLookup(users ...models.User) UserLookup {
	l := UserLookup{}
	for _, u := range users {
		l[u.ID] = u
	}
	return l
}

func (l UserLookup) GetUser(_ context.Context, id string) (*models.User, error) {
	u, ok := l[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}
