// Package catalog serves the province's reference data: municipalities,
// modalities and age groups.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgdem/desporto/go/internal/authz"
	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/rs/zerolog/log"
)

// CatalogRepository defines what the app layer needs from the repository
type CatalogRepository interface {
	ListMunicipalities(ctx context.Context) ([]models.Municipality, error)
	GetMunicipality(ctx context.Context, id string) (*models.Municipality, error)
	ListModalities(ctx context.Context) ([]models.Modality, error)
	GetModality(ctx context.Context, id string) (*models.Modality, error)
	CreateModality(ctx context.Context, m models.Modality) (*models.Modality, error)
	ListAgeGroups(ctx context.Context) ([]models.AgeGroup, error)
	CreateAgeGroup(ctx context.Context, g models.AgeGroup) (*models.AgeGroup, error)
}

// App handles catalog business logic
type App struct {
	repo CatalogRepository
	ids  store.IDGenerator
}

// NewApp creates a new catalog App
func NewApp(repo CatalogRepository, ids store.IDGenerator) *App {
	return &App{repo: repo, ids: ids}
}

func (a *App) GetMunicipalities(ctx context.Context) ([]models.Municipality, error) {
	items, err := a.repo.ListMunicipalities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get municipalities: %w", err)
	}
	return items, nil
}

func (a *App) GetMunicipality(ctx context.Context, id string) (*models.Municipality, error) {
	m, err := a.repo.GetMunicipality(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get municipality: %w", err)
	}
	return m, nil
}

func (a *App) GetModalities(ctx context.Context) ([]models.Modality, error) {
	items, err := a.repo.ListModalities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get modalities: %w", err)
	}
	return items, nil
}

// GetAgeGroups lists age groups, optionally those of a single modality
func (a *App) GetAgeGroups(ctx context.Context, modalityID string) ([]models.AgeGroup, error) {
	items, err := a.repo.ListAgeGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get age groups: %w", err)
	}
	if modalityID == "" {
		return items, nil
	}
	out := make([]models.AgeGroup, 0)
	for _, g := range items {
		if g.ModalityID == modalityID {
			out = append(out, g)
		}
	}
	return out, nil
}

// CreateModality adds a modality. The id is derived from the name.
func (a *App) CreateModality(ctx context.Context, actor models.User, req CreateModalityRequest) (*models.Modality, error) {
	if err := authz.Check(actor, authz.ActionManageCatalog, ""); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: modality name is required", models.ErrValidation)
	}
	if req.Type != models.ModalityTypeTeam && req.Type != models.ModalityTypeIndividual {
		return nil, fmt.Errorf("%w: modality type must be %s or %s", models.ErrValidation, models.ModalityTypeTeam, models.ModalityTypeIndividual)
	}

	id := slug(name)
	if id == "" {
		id = a.ids.NewID()
	}
	m, err := a.repo.CreateModality(ctx, models.Modality{
		ID:     id,
		Name:   name,
		Icon:   req.Icon,
		Status: "ATIVO",
		Type:   req.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create modality: %w", err)
	}

	log.Info().Str("modality_id", m.ID).Str("actor_id", actor.ID).Msg("Created modality")
	return m, nil
}

// CreateAgeGroup adds an age group to an existing modality
func (a *App) CreateAgeGroup(ctx context.Context, actor models.User, req CreateAgeGroupRequest) (*models.AgeGroup, error) {
	if err := authz.Check(actor, authz.ActionManageCatalog, ""); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: age group name is required", models.ErrValidation)
	}
	if req.MinAge < 0 || req.MinAge > req.MaxAge {
		return nil, fmt.Errorf("%w: invalid age range %d-%d", models.ErrValidation, req.MinAge, req.MaxAge)
	}
	if _, err := a.repo.GetModality(ctx, req.ModalityID); err != nil {
		return nil, fmt.Errorf("failed to create age group: %w", err)
	}

	g, err := a.repo.CreateAgeGroup(ctx, models.AgeGroup{
		ID:         a.ids.NewID(),
		Name:       name,
		MinAge:     req.MinAge,
		MaxAge:     req.MaxAge,
		ModalityID: req.ModalityID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create age group: %w", err)
	}

	log.Info().Str("age_group_id", g.ID).Str("modality_id", g.ModalityID).Msg("Created age group")
	return g, nil
}

// slug lowercases name and joins its words with dashes, dropping anything
// that is not an ASCII letter or digit.
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	return b.String()
}
