package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
)

// Repository holds the reference collections: municipalities, modalities and age groups
type Repository struct {
	municipalities *store.Collection[models.Municipality]
	modalities     *store.Collection[models.Modality]
	ageGroups      *store.Collection[models.AgeGroup]
}

// NewRepository creates a new catalog repository
func NewRepository(s *store.Store, seeds Seeds) *Repository {
	return &Repository{
		municipalities: store.NewCollection(s, store.Municipalities, seeds.Municipalities),
		modalities:     store.NewCollection(s, store.Modalities, seeds.Modalities),
		ageGroups:      store.NewCollection(s, store.AgeGroups, seeds.AgeGroups),
	}
}

func (r *Repository) ListMunicipalities(ctx context.Context) ([]models.Municipality, error) {
	items, err := r.municipalities.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load municipalities: %w", err)
	}
	return items, nil
}

func (r *Repository) GetMunicipality(ctx context.Context, id string) (*models.Municipality, error) {
	items, err := r.ListMunicipalities(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("municipality %s: %w", id, models.ErrNotFound)
}

func (r *Repository) ListModalities(ctx context.Context) ([]models.Modality, error) {
	items, err := r.modalities.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load modalities: %w", err)
	}
	return items, nil
}

func (r *Repository) GetModality(ctx context.Context, id string) (*models.Modality, error) {
	items, err := r.ListModalities(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("modality %s: %w", id, models.ErrNotFound)
}

func (r *Repository) CreateModality(ctx context.Context, m models.Modality) (*models.Modality, error) {
	err := r.modalities.Update(ctx, func(items []models.Modality) ([]models.Modality, error) {
		for _, existing := range items {
			if existing.ID == m.ID || strings.EqualFold(existing.Name, m.Name) {
				return nil, fmt.Errorf("%w: modality %q already exists", models.ErrDuplicateEntity, m.Name)
			}
		}
		return append(items, m), nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ListAgeGroups(ctx context.Context) ([]models.AgeGroup, error) {
	items, err := r.ageGroups.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load age groups: %w", err)
	}
	return items, nil
}

func (r *Repository) CreateAgeGroup(ctx context.Context, g models.AgeGroup) (*models.AgeGroup, error) {
	err := r.ageGroups.Update(ctx, func(items []models.AgeGroup) ([]models.AgeGroup, error) {
		for _, existing := range items {
			if existing.ID == g.ID || (existing.ModalityID == g.ModalityID && strings.EqualFold(existing.Name, g.Name)) {
				return nil, fmt.Errorf("%w: age group %q already exists for %s", models.ErrDuplicateEntity, g.Name, g.ModalityID)
			}
		}
		return append(items, g), nil
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}
