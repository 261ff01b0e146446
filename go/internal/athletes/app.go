package athletes

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/pgdem/desporto/go/internal/audit"
	"github.com/pgdem/desporto/go/internal/authz"
	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/rs/zerolog/log"
)

// AthletesRepository defines what the app layer needs from the repository
type AthletesRepository interface {
	ListAthletes(ctx context.Context) ([]models.Athlete, error)
	GetAthlete(ctx context.Context, id string) (*models.Athlete, error)
	CreateAthlete(ctx context.Context, a models.Athlete) (*models.Athlete, error)
	UpdateAthlete(ctx context.Context, id string, fn func(a *models.Athlete) error) (*models.Athlete, error)
	DeleteAthlete(ctx context.Context, id string, check func(a models.Athlete) error) (*models.Athlete, error)
}

// SchoolLookup resolves the school an athlete is enrolled in
type SchoolLookup interface {
	GetSchool(ctx context.Context, id string) (*models.School, error)
}

// Auditor records accountability entries
type Auditor interface {
	Record(ctx context.Context, actor models.User, action, detail string) error
}

// App handles athlete business logic
type App struct {
	repo    AthletesRepository
	schools SchoolLookup
	auditor Auditor
	clock   clockwork.Clock
	ids     store.IDGenerator
}

// NewApp creates a new athletes App
func NewApp(repo AthletesRepository, schools SchoolLookup, auditor Auditor, clock clockwork.Clock, ids store.IDGenerator) *App {
	return &App{
		repo:    repo,
		schools: schools,
		auditor: auditor,
		clock:   clock,
		ids:     ids,
	}
}

// RegisterAthlete enrols a new athlete. A BI that is already registered is
// rejected with ErrDuplicateEntity.
func (a *App) RegisterAthlete(ctx context.Context, actor models.User, req RegisterAthleteRequest) (*models.Athlete, error) {
	athlete := models.Athlete{
		Name:      strings.TrimSpace(req.Name),
		BI:        strings.ToUpper(strings.TrimSpace(req.BI)),
		Gender:    req.Gender,
		BirthDate: req.BirthDate,
		SchoolID:  req.SchoolID,
		Status:    models.AthleteStatusActive,
	}
	if err := a.validate(athlete); err != nil {
		return nil, err
	}

	school, err := a.authorizeSchool(ctx, actor, athlete.SchoolID)
	if err != nil {
		return nil, err
	}
	athlete.ID = a.ids.NewID()
	athlete.MunicipalityID = school.MunicipalityID

	created, err := a.repo.CreateAthlete(ctx, athlete)
	if err != nil {
		return nil, fmt.Errorf("failed to register athlete: %w", err)
	}

	a.record(ctx, actor, audit.ActionAthleteRegistered, fmt.Sprintf("Atleta %s (BI %s) em %s", created.Name, created.BI, school.Name))
	log.Info().Str("athlete_id", created.ID).Str("school_id", created.SchoolID).Msg("Registered athlete")
	return created, nil
}

// UpdateAthlete replaces an athlete's details. Moving the athlete to another
// school requires permission over both schools.
func (a *App) UpdateAthlete(ctx context.Context, actor models.User, id string, req UpdateAthleteRequest) (*models.Athlete, error) {
	current, err := a.repo.GetAthlete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update athlete: %w", err)
	}
	if _, err := a.authorizeSchool(ctx, actor, current.SchoolID); err != nil {
		return nil, err
	}

	next := models.Athlete{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		BI:        strings.ToUpper(strings.TrimSpace(req.BI)),
		Gender:    req.Gender,
		BirthDate: req.BirthDate,
		SchoolID:  req.SchoolID,
		Status:    req.Status,
	}
	if next.SchoolID == "" {
		next.SchoolID = current.SchoolID
	}
	if next.Status == "" {
		next.Status = current.Status
	}
	if next.Status != models.AthleteStatusActive && next.Status != models.AthleteStatusInactive {
		return nil, fmt.Errorf("%w: unknown athlete status %s", models.ErrValidation, next.Status)
	}
	if err := a.validate(next); err != nil {
		return nil, err
	}

	school, err := a.authorizeSchool(ctx, actor, next.SchoolID)
	if err != nil {
		return nil, err
	}
	next.MunicipalityID = school.MunicipalityID

	updated, err := a.repo.UpdateAthlete(ctx, id, func(stored *models.Athlete) error {
		*stored = next
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update athlete: %w", err)
	}

	a.record(ctx, actor, audit.ActionAthleteUpdated, fmt.Sprintf("Atleta %s (BI %s)", updated.Name, updated.BI))
	log.Info().Str("athlete_id", updated.ID).Msg("Updated athlete")
	return updated, nil
}

// DeleteAthlete removes an athlete
func (a *App) DeleteAthlete(ctx context.Context, actor models.User, id string) error {
	removed, err := a.repo.DeleteAthlete(ctx, id, func(stored models.Athlete) error {
		return a.checkSchool(actor, stored.SchoolID, stored.MunicipalityID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete athlete: %w", err)
	}

	a.record(ctx, actor, audit.ActionAthleteDeleted, fmt.Sprintf("Atleta %s (BI %s)", removed.Name, removed.BI))
	log.Info().Str("athlete_id", removed.ID).Msg("Deleted athlete")
	return nil
}

// GetAthletes lists athletes matching filter in registration order
func (a *App) GetAthletes(ctx context.Context, filter AthleteFilter) ([]models.Athlete, error) {
	items, err := a.repo.ListAthletes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get athletes: %w", err)
	}
	out := make([]models.Athlete, 0, len(items))
	for _, athlete := range items {
		if filter.matches(athlete) {
			out = append(out, athlete)
		}
	}
	return out, nil
}

// GetAthlete retrieves an athlete by ID
func (a *App) GetAthlete(ctx context.Context, id string) (*models.Athlete, error) {
	athlete, err := a.repo.GetAthlete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get athlete: %w", err)
	}
	return athlete, nil
}

// authorizeSchool loads the school and checks actor may manage its athletes
func (a *App) authorizeSchool(ctx context.Context, actor models.User, schoolID string) (*models.School, error) {
	school, err := a.schools.GetSchool(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve school: %w", err)
	}
	if err := a.checkSchool(actor, school.ID, school.MunicipalityID); err != nil {
		return nil, err
	}
	return school, nil
}

func (a *App) checkSchool(actor models.User, schoolID, municipalityID string) error {
	if err := authz.Check(actor, authz.ActionManageAthletes, municipalityID); err != nil {
		return err
	}
	// school accounts only manage their own roster
	if actor.Role == models.RoleSchool && actor.SchoolID != schoolID {
		return fmt.Errorf("%w: %s can only manage athletes of school %s", models.ErrPermissionDenied, actor.Name, actor.SchoolID)
	}
	return nil
}

func (a *App) validate(athlete models.Athlete) error {
	var problems []string
	if athlete.Name == "" {
		problems = append(problems, "name is required")
	}
	if athlete.BI == "" {
		problems = append(problems, "BI is required")
	}
	if athlete.Gender != models.GenderMale && athlete.Gender != models.GenderFemale {
		problems = append(problems, "gender must be M or F")
	}
	if athlete.BirthDate.IsZero() || athlete.BirthDate.After(a.clock.Now()) {
		problems = append(problems, "birth date must be in the past")
	}
	if athlete.SchoolID == "" {
		problems = append(problems, "school is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

func (a *App) record(ctx context.Context, actor models.User, action, detail string) {
	if err := a.auditor.Record(ctx, actor, action, detail); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to record audit entry")
	}
}
