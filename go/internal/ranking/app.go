// Package ranking computes school standings from validated game results.
package ranking

import (
	"context"
	"fmt"

	"github.com/pgdem/desporto/go/internal/models"
)

// Source loads the collections a ranking is derived from
type Source interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	ListAthletes(ctx context.Context) ([]models.Athlete, error)
	ListSchools(ctx context.Context) ([]models.School, error)
}

// App serves rankings. Nothing is cached; every call recomputes.
type App struct {
	source Source
}

// NewApp creates a new ranking App
func NewApp(source Source) *App {
	return &App{source: source}
}

// CalculateRanking returns the standings of modalityID, province-wide when
// municipalityID is empty.
func (a *App) CalculateRanking(ctx context.Context, modalityID, municipalityID string) ([]models.RankingEntry, error) {
	if modalityID == "" {
		return nil, fmt.Errorf("%w: modality is required", models.ErrValidation)
	}

	games, err := a.source.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate ranking: %w", err)
	}
	athletes, err := a.source.ListAthletes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate ranking: %w", err)
	}
	schools, err := a.source.ListSchools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate ranking: %w", err)
	}

	return Calculate(games, athletes, schools, modalityID, municipalityID), nil
}
