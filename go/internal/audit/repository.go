package audit

import (
	"context"
	"fmt"

	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
)

// Repository persists the audit trail in the audit collection, newest first
type Repository struct {
	logs *store.Collection[models.AuditLog]
}

// NewRepository creates a new audit repository
func NewRepository(s *store.Store) *Repository {
	return &Repository{
		logs: store.NewCollection[models.AuditLog](s, store.Audit, nil),
	}
}

// Prepend inserts entry at the head of the trail and drops everything past limit
func (r *Repository) Prepend(ctx context.Context, entry models.AuditLog, limit int) error {
	err := r.logs.Update(ctx, func(logs []models.AuditLog) ([]models.AuditLog, error) {
		next := make([]models.AuditLog, 0, len(logs)+1)
		next = append(next, entry)
		next = append(next, logs...)
		if len(next) > limit {
			next = next[:limit]
		}
		return next, nil
	})
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// List returns the whole trail, newest first
func (r *Repository) List(ctx context.Context) ([]models.AuditLog, error) {
	logs, err := r.logs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}
	return logs, nil
}
