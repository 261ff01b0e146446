package athletes

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
)

// Repository handles athlete persistence
type Repository struct {
	athletes *store.Collection[models.Athlete]
}

// NewRepository creates a new athletes repository
func NewRepository(s *store.Store) *Repository {
	return &Repository{
		athletes: store.NewCollection[models.Athlete](s, store.Athletes, nil),
	}
}

func (r *Repository) ListAthletes(ctx context.Context) ([]models.Athlete, error) {
	items, err := r.athletes.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load athletes: %w", err)
	}
	return items, nil
}

func (r *Repository) GetAthlete(ctx context.Context, id string) (*models.Athlete, error) {
	items, err := r.ListAthletes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("athlete %s: %w", id, models.ErrNotFound)
}

// CreateAthlete appends a unless another athlete holds the same BI
func (r *Repository) CreateAthlete(ctx context.Context, a models.Athlete) (*models.Athlete, error) {
	err := r.athletes.Update(ctx, func(items []models.Athlete) ([]models.Athlete, error) {
		if err := checkBI(items, a.BI, ""); err != nil {
			return nil, err
		}
		return append(items, a), nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAthlete applies fn to the stored athlete with id. The BI stays unique.
func (r *Repository) UpdateAthlete(ctx context.Context, id string, fn func(a *models.Athlete) error) (*models.Athlete, error) {
	var updated models.Athlete
	err := r.athletes.Update(ctx, func(items []models.Athlete) ([]models.Athlete, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			next := items[i]
			if err := fn(&next); err != nil {
				return nil, err
			}
			if err := checkBI(items, next.BI, id); err != nil {
				return nil, err
			}
			next.ID = id
			items[i] = next
			updated = next
			return items, nil
		}
		return nil, fmt.Errorf("athlete %s: %w", id, models.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAthlete removes the athlete with id after check approves it
func (r *Repository) DeleteAthlete(ctx context.Context, id string, check func(a models.Athlete) error) (*models.Athlete, error) {
	var removed models.Athlete
	err := r.athletes.Update(ctx, func(items []models.Athlete) ([]models.Athlete, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if err := check(items[i]); err != nil {
				return nil, err
			}
			removed = items[i]
			return append(items[:i], items[i+1:]...), nil
		}
		return nil, fmt.Errorf("athlete %s: %w", id, models.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func checkBI(items []models.Athlete, bi, exceptID string) error {
	for _, existing := range items {
		if existing.ID != exceptID && strings.EqualFold(existing.BI, bi) {
			return fmt.Errorf("%w: Já existe um atleta registado com o BI %s (%s)", models.ErrDuplicateEntity, bi, existing.Name)
		}
	}
	return nil
}
