package schools

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgdem/desporto/go/internal/audit"
	"github.com/pgdem/desporto/go/internal/authz"
	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/rs/zerolog/log"
)

// SchoolsRepository defines what the app layer needs from the repository
type SchoolsRepository interface {
	ListSchools(ctx context.Context) ([]models.School, error)
	GetSchool(ctx context.Context, id string) (*models.School, error)
	CreateSchool(ctx context.Context, school models.School) (*models.School, error)
}

// MunicipalityLookup confirms a municipality exists
type MunicipalityLookup interface {
	GetMunicipality(ctx context.Context, id string) (*models.Municipality, error)
}

// Auditor records accountability entries
type Auditor interface {
	Record(ctx context.Context, actor models.User, action, detail string) error
}

// App handles school business logic
type App struct {
	repo           SchoolsRepository
	municipalities MunicipalityLookup
	auditor        Auditor
	ids            store.IDGenerator
}

// NewApp creates a new schools App
func NewApp(repo SchoolsRepository, municipalities MunicipalityLookup, auditor Auditor, ids store.IDGenerator) *App {
	return &App{
		repo:           repo,
		municipalities: municipalities,
		auditor:        auditor,
		ids:            ids,
	}
}

// CreateSchool registers a school
func (a *App) CreateSchool(ctx context.Context, actor models.User, req CreateSchoolRequest) (*models.School, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: school name is required", models.ErrValidation)
	}
	if req.MunicipalityID == "" {
		return nil, fmt.Errorf("%w: municipality is required", models.ErrValidation)
	}
	if err := authz.Check(actor, authz.ActionManageSchools, req.MunicipalityID); err != nil {
		return nil, err
	}
	if _, err := a.municipalities.GetMunicipality(ctx, req.MunicipalityID); err != nil {
		return nil, fmt.Errorf("failed to create school: %w", err)
	}

	school, err := a.repo.CreateSchool(ctx, models.School{
		ID:             a.ids.NewID(),
		Name:           req.Name,
		MunicipalityID: req.MunicipalityID,
		Address:        req.Address,
		Director:       req.Director,
		Contact:        req.Contact,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create school: %w", err)
	}

	if err := a.auditor.Record(ctx, actor, audit.ActionSchoolCreated, fmt.Sprintf("Escola %s (%s)", school.Name, school.MunicipalityID)); err != nil {
		log.Warn().Err(err).Msg("failed to record audit entry")
	}
	log.Info().Str("school_id", school.ID).Str("municipality_id", school.MunicipalityID).Msg("Created school")
	return school, nil
}

// GetSchools lists schools, optionally restricted to one municipality
func (a *App) GetSchools(ctx context.Context, municipalityID string) ([]models.School, error) {
	schools, err := a.repo.ListSchools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get schools: %w", err)
	}
	if municipalityID == "" {
		return schools, nil
	}
	out := make([]models.School, 0)
	for _, s := range schools {
		if s.MunicipalityID == municipalityID {
			out = append(out, s)
		}
	}
	return out, nil
}

// GetSchool retrieves a school by ID
func (a *App) GetSchool(ctx context.Context, id string) (*models.School, error) {
	school, err := a.repo.GetSchool(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get school: %w", err)
	}
	return school, nil
}
