package users

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

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id string, fn func(u *models.User) error) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (*models.User, error)
}

// Auditor records accountability entries
type Auditor interface {
	Record(ctx context.Context, actor models.User, action, detail string) error
}

// App handles users business logic
type App struct {
	repo    UsersRepository
	auditor Auditor
	clock   clockwork.Clock
	ids     store.IDGenerator
}

// NewApp creates a new users App
func NewApp(repo UsersRepository, auditor Auditor, clock clockwork.Clock, ids store.IDGenerator) *App {
	return &App{
		repo:    repo,
		auditor: auditor,
		clock:   clock,
		ids:     ids,
	}
}

// CreateUser creates a new user with validation
func (a *App) CreateUser(ctx context.Context, actor models.User, req CreateUserRequest) (*models.User, error) {
	if err := authz.Check(actor, authz.ActionManageUsers, ""); err != nil {
		return nil, err
	}
	if err := validateUserRequest(req.Name, req.Email, req.Role, req.MunicipalityID, req.SchoolID); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	user, err := a.repo.CreateUser(ctx, models.User{
		ID:             a.ids.NewID(),
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Role:           req.Role,
		MunicipalityID: req.MunicipalityID,
		SchoolID:       req.SchoolID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	a.record(ctx, actor, audit.ActionUserCreated, fmt.Sprintf("Utilizador %s (%s)", user.Email, user.Role))
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("Created user")
	return user, nil
}

// GetUser retrieves a user by ID
func (a *App) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns every account. Only super administrators may list them.
func (a *App) ListUsers(ctx context.Context, actor models.User) ([]models.User, error) {
	if err := authz.Check(actor, authz.ActionManageUsers, ""); err != nil {
		return nil, err
	}
	users, err := a.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser updates an existing user with validation
func (a *App) UpdateUser(ctx context.Context, actor models.User, id string, req UpdateUserRequest) (*models.User, error) {
	if err := authz.Check(actor, authz.ActionManageUsers, ""); err != nil {
		return nil, err
	}
	if err := validateUserRequest(req.Name, req.Email, req.Role, req.MunicipalityID, req.SchoolID); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	user, err := a.repo.UpdateUser(ctx, id, func(u *models.User) error {
		u.Name = strings.TrimSpace(req.Name)
		u.Email = strings.ToLower(strings.TrimSpace(req.Email))
		u.Role = req.Role
		u.MunicipalityID = req.MunicipalityID
		u.SchoolID = req.SchoolID
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	a.record(ctx, actor, audit.ActionUserUpdated, fmt.Sprintf("Utilizador %s (%s)", user.Email, user.Role))
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("Updated user")
	return user, nil
}

// DeleteUser deletes a user by ID. Users cannot delete themselves.
func (a *App) DeleteUser(ctx context.Context, actor models.User, id string) error {
	if err := authz.Check(actor, authz.ActionManageUsers, ""); err != nil {
		return err
	}
	if actor.ID == id {
		return fmt.Errorf("%w: users cannot delete their own account", models.ErrValidation)
	}

	user, err := a.repo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	a.record(ctx, actor, audit.ActionUserDeleted, fmt.Sprintf("Utilizador %s (%s)", user.Email, user.Role))
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("Deleted user")
	return nil
}

// Register creates an ESCOLA account for a school's responsible person. The
// e-mail must not be taken. The new user audits its own registration.
func (a *App) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	user, err := a.repo.CreateUser(ctx, models.User{
		ID:             a.ids.NewID(),
		Name:           strings.TrimSpace(req.ResponsibleName),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Role:           models.RoleSchool,
		MunicipalityID: strings.ToLower(strings.TrimSpace(req.MunicipalityID)),
		LastLogin:      a.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	a.record(ctx, *user, audit.ActionUserRegistered,
		fmt.Sprintf("Registo de %s (%s)", strings.TrimSpace(req.InstitutionName), user.Email))
	log.Info().Str("user_id", user.ID).Str("municipality_id", user.MunicipalityID).Msg("Registered school account")
	return user, nil
}

// Login identifies a user by e-mail, stamps LastLogin and records the event
func (a *App) Login(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", models.ErrValidation)
	}
	existing, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	now := a.clock.Now()
	user, err := a.repo.UpdateUser(ctx, existing.ID, func(u *models.User) error {
		u.LastLogin = now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	a.record(ctx, *user, audit.ActionLogin, "Sessão iniciada")
	log.Info().Str("user_id", user.ID).Msg("User logged in")
	return user, nil
}

func (a *App) record(ctx context.Context, actor models.User, action, detail string) {
	if err := a.auditor.Record(ctx, actor, action, detail); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to record audit entry")
	}
}

func validateRegisterRequest(req RegisterRequest) error {
	if strings.TrimSpace(req.InstitutionName) == "" {
		return fmt.Errorf("institution name is required")
	}
	if strings.TrimSpace(req.MunicipalityID) == "" {
		return fmt.Errorf("municipality is required")
	}
	return validateIdentity(req.ResponsibleName, req.Email)
}

func validateIdentity(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("email format is invalid")
	}
	return nil
}

// validateUserRequest checks the fields shared by create and update
func validateUserRequest(name, email string, role models.Role, municipalityID, schoolID string) error {
	if err := validateIdentity(name, email); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("unknown role %s", role)
	}
	switch role {
	case models.RoleCoordinator:
		if municipalityID == "" {
			return fmt.Errorf("coordinators must belong to a municipality")
		}
	case models.RoleSchool:
		if municipalityID == "" || schoolID == "" {
			return fmt.Errorf("school accounts must reference a municipality and a school")
		}
	}
	return nil
}
