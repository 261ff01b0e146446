package games

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

// GamesRepository defines what the app layer needs from the repository
type GamesRepository interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	GetGame(ctx context.Context, id string) (*models.Game, error)
	UpsertGame(ctx context.Context, id string, fn func(existing *models.Game) (models.Game, error)) (*models.Game, error)
	UpdateGame(ctx context.Context, id string, fn func(g *models.Game) error) (*models.Game, error)
}

// Auditor records accountability entries
type Auditor interface {
	Record(ctx context.Context, actor models.User, action, detail string) error
}

// Notifier delivers in-app notifications
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// App governs the game lifecycle: AGENDADO -> PROVISORIO -> VALIDADO | REJEITADO
type App struct {
	repo     GamesRepository
	auditor  Auditor
	notifier Notifier
	clock    clockwork.Clock
	ids      store.IDGenerator
}

// NewApp creates a new games App
func NewApp(repo GamesRepository, auditor Auditor, notifier Notifier, clock clockwork.Clock, ids store.IDGenerator) *App {
	return &App{
		repo:     repo,
		auditor:  auditor,
		notifier: notifier,
		clock:    clock,
		ids:      ids,
	}
}

// ScheduleGame creates an AGENDADO fixture
func (a *App) ScheduleGame(ctx context.Context, actor models.User, req ScheduleGameRequest) (*models.Game, error) {
	g := models.Game{
		ModalityID:     req.ModalityID,
		MunicipalityID: req.MunicipalityID,
		HomeSchool:     strings.TrimSpace(req.HomeSchool),
		AwaySchool:     strings.TrimSpace(req.AwaySchool),
		Date:           req.Date,
	}
	if err := validateGame(g); err != nil {
		return nil, err
	}
	if err := authz.Check(actor, authz.ActionScheduleGame, g.MunicipalityID); err != nil {
		return nil, err
	}

	g.ID = a.ids.NewID()
	g.Status = models.GameStatusScheduled
	g.UpdatedBy = actor.ID
	if g.Date.IsZero() {
		g.Date = a.clock.Now()
	}

	saved, err := a.repo.UpsertGame(ctx, "", func(*models.Game) (models.Game, error) { return g, nil })
	if err != nil {
		return nil, fmt.Errorf("failed to schedule game: %w", err)
	}

	a.record(ctx, actor, audit.ActionGameScheduled, describe(*saved))
	log.Info().Str("game_id", saved.ID).Str("municipality_id", saved.MunicipalityID).Msg("Scheduled game")
	return saved, nil
}

// SaveGameResult creates or updates a game's result. Results submitted by
// province-level users are validated immediately; everyone else's wait in
// PROVISORIO for a coordinator or administrator.
func (a *App) SaveGameResult(ctx context.Context, actor models.User, game models.Game) (*models.Game, error) {
	game.HomeSchool = strings.TrimSpace(game.HomeSchool)
	game.AwaySchool = strings.TrimSpace(game.AwaySchool)
	if err := validateGame(game); err != nil {
		return nil, err
	}
	if err := authz.Check(actor, authz.ActionSubmitResult, game.MunicipalityID); err != nil {
		return nil, err
	}

	created := false
	saved, err := a.repo.UpsertGame(ctx, game.ID, func(existing *models.Game) (models.Game, error) {
		next := game
		if existing == nil {
			created = true
			if next.ID == "" {
				next.ID = a.ids.NewID()
			}
			if next.Date.IsZero() {
				next.Date = a.clock.Now()
			}
		} else {
			if existing.Status.IsTerminal() {
				return models.Game{}, fmt.Errorf("%w: game %s is already %s", models.ErrInvalidTransition, existing.ID, existing.Status)
			}
			if err := authz.Check(actor, authz.ActionSubmitResult, existing.MunicipalityID); err != nil {
				return models.Game{}, err
			}
			if next.Date.IsZero() {
				next.Date = existing.Date
			}
		}

		next.UpdatedBy = actor.ID
		if actor.Role.IsElevated() {
			next.Status = models.GameStatusValidated
			validator := actor.ID
			next.ValidatedBy = &validator
		} else {
			next.Status = models.GameStatusProvisional
			next.ValidatedBy = nil
		}
		return next, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save game result: %w", err)
	}

	a.record(ctx, actor, audit.ActionGameResultSubmitted, describe(*saved))
	if saved.Status == models.GameStatusProvisional {
		a.notify(ctx, models.Notification{
			TargetRole:           models.RoleCoordinator,
			TargetMunicipalityID: saved.MunicipalityID,
			Message:              fmt.Sprintf("Resultado provisório a aguardar validação: %s", describe(*saved)),
			Type:                 models.NotificationInfo,
		})
	}

	log.Info().
		Str("game_id", saved.ID).
		Str("status", string(saved.Status)).
		Bool("created", created).
		Msg("Saved game result")
	return saved, nil
}

// ValidateGame moves a PROVISORIO game to VALIDADO or REJEITADO and tells the
// submitter about the decision.
func (a *App) ValidateGame(ctx context.Context, actor models.User, id string, status models.GameStatus) (*models.Game, error) {
	if status != models.GameStatusValidated && status != models.GameStatusRejected {
		return nil, fmt.Errorf("%w: status must be %s or %s", models.ErrValidation, models.GameStatusValidated, models.GameStatusRejected)
	}

	saved, err := a.repo.UpdateGame(ctx, id, func(g *models.Game) error {
		if err := authz.Check(actor, authz.ActionValidateGame, g.MunicipalityID); err != nil {
			return err
		}
		if g.Status != models.GameStatusProvisional {
			return fmt.Errorf("%w: game %s is %s, only %s results can be reviewed",
				models.ErrInvalidTransition, g.ID, g.Status, models.GameStatusProvisional)
		}
		validator := actor.ID
		g.Status = status
		g.ValidatedBy = &validator
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to validate game: %w", err)
	}

	action, kind, verb := audit.ActionGameValidated, models.NotificationSuccess, "homologado"
	if status == models.GameStatusRejected {
		action, kind, verb = audit.ActionGameRejected, models.NotificationWarning, "rejeitado"
	}
	a.record(ctx, actor, action, describe(*saved))
	if saved.UpdatedBy != "" && saved.UpdatedBy != actor.ID {
		a.notify(ctx, models.Notification{
			TargetUserID: saved.UpdatedBy,
			Message:      fmt.Sprintf("O resultado %s foi %s por %s", describe(*saved), verb, actor.Name),
			Type:         kind,
		})
	}

	log.Info().Str("game_id", saved.ID).Str("status", string(saved.Status)).Str("validated_by", actor.ID).Msg("Reviewed game result")
	return saved, nil
}

// GetGames returns the games matching filter in stored order
func (a *App) GetGames(ctx context.Context, filter GameFilter) ([]models.Game, error) {
	games, err := a.repo.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}
	out := make([]models.Game, 0, len(games))
	for _, g := range games {
		if filter.matches(g) {
			out = append(out, g)
		}
	}
	return out, nil
}

// GetGame returns a single game
func (a *App) GetGame(ctx context.Context, id string) (*models.Game, error) {
	g, err := a.repo.GetGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return g, nil
}

func (a *App) record(ctx context.Context, actor models.User, action, detail string) {
	if err := a.auditor.Record(ctx, actor, action, detail); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to record audit entry")
	}
}

func (a *App) notify(ctx context.Context, n models.Notification) {
	if err := a.notifier.Notify(ctx, n); err != nil {
		log.Warn().Err(err).Msg("failed to deliver notification")
	}
}

func validateGame(g models.Game) error {
	var problems []string
	if g.ModalityID == "" {
		problems = append(problems, "modality is required")
	}
	if g.MunicipalityID == "" {
		problems = append(problems, "municipality is required")
	}
	if g.HomeSchool == "" || g.AwaySchool == "" {
		problems = append(problems, "both schools are required")
	} else if strings.EqualFold(g.HomeSchool, g.AwaySchool) {
		problems = append(problems, "a school cannot play itself")
	}
	if g.HomeScore < 0 || g.AwayScore < 0 {
		problems = append(problems, "scores cannot be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

func describe(g models.Game) string {
	return fmt.Sprintf("%s %d-%d %s (%s, %s)", g.HomeSchool, g.HomeScore, g.AwayScore, g.AwaySchool, g.ModalityID, g.MunicipalityID)
}
