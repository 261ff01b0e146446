package notifications

import (
	"context"
	"fmt"

	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
)

// Repository stores notifications newest first
type Repository struct {
	items *store.Collection[models.Notification]
}

// NewRepository creates a new notifications repository
func NewRepository(s *store.Store) *Repository {
	return &Repository{
		items: store.NewCollection[models.Notification](s, store.Notifications, nil),
	}
}

// Prepend stores n at the head of the collection and keeps at most limit
// entries. A limit <= 0 keeps everything.
func (r *Repository) Prepend(ctx context.Context, n models.Notification, limit int) error {
	err := r.items.Update(ctx, func(items []models.Notification) ([]models.Notification, error) {
		items = append([]models.Notification{n}, items...)
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		return items, nil
	})
	if err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

// List returns every notification, newest first
func (r *Repository) List(ctx context.Context) ([]models.Notification, error) {
	items, err := r.items.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	return items, nil
}

// MarkRead flips the read flag of id. Notifications rejected by visible are
// reported as not found.
func (r *Repository) MarkRead(ctx context.Context, id string, visible func(models.Notification) bool) (*models.Notification, error) {
	var marked models.Notification
	err := r.items.Update(ctx, func(items []models.Notification) ([]models.Notification, error) {
		for i := range items {
			if items[i].ID == id && visible(items[i]) {
				items[i].Read = true
				marked = items[i]
				return items, nil
			}
		}
		return nil, fmt.Errorf("notification %s: %w", id, models.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &marked, nil
}
