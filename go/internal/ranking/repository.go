package ranking

import (
	"context"
	"fmt"

	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
)

// Repository reads the games, athletes and schools collections
type Repository struct {
	games    *store.Collection[models.Game]
	athletes *store.Collection[models.Athlete]
	schools  *store.Collection[models.School]
}

// NewRepository creates a ranking repository. schoolSeed must match the one the
// schools package uses so whichever loads first persists the same defaults.
func NewRepository(s *store.Store, schoolSeed func() []models.School) *Repository {
	return &Repository{
		games:    store.NewCollection[models.Game](s, store.Games, nil),
		athletes: store.NewCollection[models.Athlete](s, store.Athletes, nil),
		schools:  store.NewCollection(s, store.Schools, schoolSeed),
	}
}

func (r *Repository) ListGames(ctx context.Context) ([]models.Game, error) {
	games, err := r.games.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	return games, nil
}

func (r *Repository) ListAthletes(ctx context.Context) ([]models.Athlete, error) {
	athletes, err := r.athletes.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load athletes: %w", err)
	}
	return athletes, nil
}

func (r *Repository) ListSchools(ctx context.Context) ([]models.School, error) {
	schools, err := r.schools.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schools: %w", err)
	}
	return schools, nil
}
