package games

import (
	"context"
	"fmt"

	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
)

// Repository handles game persistence in the games collection
type Repository struct {
	games *store.Collection[models.Game]
}

// NewRepository creates a new games repository
func NewRepository(s *store.Store) *Repository {
	return &Repository{
		games: store.NewCollection[models.Game](s, store.Games, nil),
	}
}

// ListGames returns every game in stored order
func (r *Repository) ListGames(ctx context.Context) ([]models.Game, error) {
	games, err := r.games.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	return games, nil
}

// GetGame returns the game with id
func (r *Repository) GetGame(ctx context.Context, id string) (*models.Game, error) {
	games, err := r.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	for i := range games {
		if games[i].ID == id {
			return &games[i], nil
		}
	}
	return nil, fmt.Errorf("game %s: %w", id, models.ErrNotFound)
}

// UpsertGame locks the collection and passes the game stored under id (nil
// when there is none) to fn. The returned game replaces it in place, or is
// appended when it is new.
func (r *Repository) UpsertGame(ctx context.Context, id string, fn func(existing *models.Game) (models.Game, error)) (*models.Game, error) {
	var saved models.Game
	err := r.games.Update(ctx, func(games []models.Game) ([]models.Game, error) {
		idx := -1
		if id != "" {
			for i := range games {
				if games[i].ID == id {
					idx = i
					break
				}
			}
		}

		var existing *models.Game
		if idx >= 0 {
			cp := games[idx]
			existing = &cp
		}
		next, err := fn(existing)
		if err != nil {
			return nil, err
		}

		saved = next
		if idx >= 0 {
			games[idx] = next
			return games, nil
		}
		return append(games, next), nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateGame is UpsertGame for games that must already exist
func (r *Repository) UpdateGame(ctx context.Context, id string, fn func(g *models.Game) error) (*models.Game, error) {
	return r.UpsertGame(ctx, id, func(existing *models.Game) (models.Game, error) {
		if existing == nil {
			return models.Game{}, fmt.Errorf("game %s: %w", id, models.ErrNotFound)
		}
		if err := fn(existing); err != nil {
			return models.Game{}, err
		}
		return *existing, nil
	})
}
