package audit

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/pgdem/desporto/go/internal/authz"
	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/rs/zerolog/log"
)

// AuditRepository defines what the app layer needs from the repository
type AuditRepository interface {
	Prepend(ctx context.Context, entry models.AuditLog, limit int) error
	List(ctx context.Context) ([]models.AuditLog, error)
}

// App records and serves the audit trail
type App struct {
	repo        AuditRepository
	clock       clockwork.Clock
	ids         store.IDGenerator
	environment string
}

// NewApp creates a new audit App. environment tags every entry (e.g. "production").
func NewApp(repo AuditRepository, clock clockwork.Clock, ids store.IDGenerator, environment string) *App {
	return &App{
		repo:        repo,
		clock:       clock,
		ids:         ids,
		environment: environment,
	}
}

// Record prepends an entry attributed to actor
func (a *App) Record(ctx context.Context, actor models.User, action, detail string) error {
	entry := models.AuditLog{
		ID:          a.ids.NewID(),
		Timestamp:   a.clock.Now(),
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		Action:      action,
		Detail:      detail,
		Environment: a.environment,
		Origin:      authz.Origin(actor),
	}
	if err := a.repo.Prepend(ctx, entry, MaxEntries); err != nil {
		return err
	}

	log.Debug().
		Str("actor_id", actor.ID).
		Str("action", action).
		Msg("audit entry recorded")
	return nil
}

// List returns the trail, newest first. Only province-level users may read it.
func (a *App) List(ctx context.Context, actor models.User, filter ListFilter) ([]models.AuditLog, error) {
	if err := authz.Check(actor, authz.ActionViewAudit, ""); err != nil {
		return nil, err
	}

	logs, err := a.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	out := make([]models.AuditLog, 0, len(logs))
	for _, l := range logs {
		if filter.ActorID != "" && l.ActorID != filter.ActorID {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.Origin != "" && l.Origin != filter.Origin {
			continue
		}
		out = append(out, l)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
