package schools

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
)

// Repository handles school persistence
type Repository struct {
	schools *store.Collection[models.School]
}

// NewRepository creates a new schools repository seeded with seed on first access
func NewRepository(s *store.Store, seed func() []models.School) *Repository {
	return &Repository{
		schools: store.NewCollection(s, store.Schools, seed),
	}
}

func (r *Repository) ListSchools(ctx context.Context) ([]models.School, error) {
	schools, err := r.schools.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schools: %w", err)
	}
	return schools, nil
}

func (r *Repository) GetSchool(ctx context.Context, id string) (*models.School, error) {
	schools, err := r.ListSchools(ctx)
	if err != nil {
		return nil, err
	}
	for i := range schools {
		if schools[i].ID == id {
			return &schools[i], nil
		}
	}
	return nil, fmt.Errorf("school %s: %w", id, models.ErrNotFound)
}

// CreateSchool appends school unless its name is already taken in the same municipality
func (r *Repository) CreateSchool(ctx context.Context, school models.School) (*models.School, error) {
	err := r.schools.Update(ctx, func(schools []models.School) ([]models.School, error) {
		for _, s := range schools {
			if s.ID == school.ID {
				return nil, fmt.Errorf("%w: school id %s already exists", models.ErrDuplicateEntity, school.ID)
			}
			if s.MunicipalityID == school.MunicipalityID && strings.EqualFold(s.Name, school.Name) {
				return nil, fmt.Errorf("%w: school %q already exists in %s", models.ErrDuplicateEntity, school.Name, school.MunicipalityID)
			}
		}
		return append(schools, school), nil
	})
	if err != nil {
		return nil, err
	}
	return &school, nil
}
