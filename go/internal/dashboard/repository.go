package dashboard

import (
	"context"
	"fmt"

	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
)

// Repository reads every collection the dashboard counts
type Repository struct {
	municipalities *store.Collection[models.Municipality]
	modalities     *store.Collection[models.Modality]
	schools        *store.Collection[models.School]
	athletes       *store.Collection[models.Athlete]
	games          *store.Collection[models.Game]
	infra          *store.Collection[models.Infrastructure]
	announcements  *store.Collection[models.Announcement]
}

// NewRepository creates a new dashboard repository
func NewRepository(s *store.Store, seeds Seeds) *Repository {
	return &Repository{
		municipalities: store.NewCollection(s, store.Municipalities, seeds.Municipalities),
		modalities:     store.NewCollection(s, store.Modalities, seeds.Modalities),
		schools:        store.NewCollection(s, store.Schools, seeds.Schools),
		athletes:       store.NewCollection[models.Athlete](s, store.Athletes, nil),
		games:          store.NewCollection[models.Game](s, store.Games, nil),
		infra:          store.NewCollection[models.Infrastructure](s, store.Infra, nil),
		announcements:  store.NewCollection[models.Announcement](s, store.Announcements, nil),
	}
}

// Snapshot is every record the dashboard aggregates
type Snapshot struct {
	Municipalities []models.Municipality
	Modalities     []models.Modality
	Schools        []models.School
	Athletes       []models.Athlete
	Games          []models.Game
	Infra          []models.Infrastructure
	Announcements  []models.Announcement
}

// Snapshot loads each collection in turn. Collections are not read atomically
// with respect to each other.
func (r *Repository) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Municipalities, err = r.municipalities.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load municipalities: %w", err)
	}
	if snap.Modalities, err = r.modalities.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load modalities: %w", err)
	}
	if snap.Schools, err = r.schools.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load schools: %w", err)
	}
	if snap.Athletes, err = r.athletes.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load athletes: %w", err)
	}
	if snap.Games, err = r.games.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	if snap.Infra, err = r.infra.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load infrastructure: %w", err)
	}
	if snap.Announcements, err = r.announcements.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load announcements: %w", err)
	}
	return &snap, nil
}
