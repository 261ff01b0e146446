package notifications

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

// NotificationsRepository defines what the app layer needs from the repository
type NotificationsRepository interface {
	Prepend(ctx context.Context, n models.Notification, limit int) error
	List(ctx context.Context) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string, visible func(models.Notification) bool) (*models.Notification, error)
}

// Auditor records accountability entries
type Auditor interface {
	Record(ctx context.Context, actor models.User, action, detail string) error
}

// App handles notification business logic
type App struct {
	repo    NotificationsRepository
	auditor Auditor
	clock   clockwork.Clock
	ids     store.IDGenerator
}

// NewApp creates a new notifications App
func NewApp(repo NotificationsRepository, auditor Auditor, clock clockwork.Clock, ids store.IDGenerator) *App {
	return &App{
		repo:    repo,
		auditor: auditor,
		clock:   clock,
		ids:     ids,
	}
}

// Notify stores a system-generated notification. ID and Timestamp are
// filled in when empty.
func (a *App) Notify(ctx context.Context, n models.Notification) error {
	if n.ID == "" {
		n.ID = a.ids.NewID()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = a.clock.Now()
	}
	if n.Type == "" {
		n.Type = models.NotificationInfo
	}
	n.Read = false

	if err := a.repo.Prepend(ctx, n, MaxEntries); err != nil {
		return err
	}
	log.Debug().Str("notification_id", n.ID).Str("target_user", n.TargetUserID).Str("target_role", string(n.TargetRole)).Msg("notification stored")
	return nil
}

// Send broadcasts a user-composed notification
func (a *App) Send(ctx context.Context, actor models.User, req SendRequest) (*models.Notification, error) {
	if err := validateSendRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	// municipal users may only address their own municipality
	target := req.TargetMunicipalityID
	if target == "" && !actor.Role.IsElevated() {
		target = actor.MunicipalityID
		req.TargetMunicipalityID = target
	}
	if err := authz.Check(actor, authz.ActionSendNotification, target); err != nil {
		return nil, err
	}

	n := models.Notification{
		ID:                   a.ids.NewID(),
		TargetUserID:         req.TargetUserID,
		TargetRole:           req.TargetRole,
		TargetMunicipalityID: req.TargetMunicipalityID,
		Message:              req.Message,
		Type:                 req.Type,
		Timestamp:            a.clock.Now(),
	}
	if err := a.Notify(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}

	a.record(ctx, actor, audit.ActionNotificationSent, fmt.Sprintf("Notificação %s enviada: %s", n.ID, n.Message))
	log.Info().Str("notification_id", n.ID).Str("actor_id", actor.ID).Msg("Sent notification")
	return &n, nil
}

// GetNotifications returns what u can see, newest first
func (a *App) GetNotifications(ctx context.Context, u models.User) ([]models.Notification, error) {
	items, err := a.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	out := make([]models.Notification, 0)
	for _, n := range items {
		if n.VisibleTo(u) {
			out = append(out, n)
		}
	}
	return out, nil
}

// MarkAsRead flags a notification u can see as read. Unknown ids and
// notifications addressed to someone else return ErrNotFound.
func (a *App) MarkAsRead(ctx context.Context, u models.User, id string) (*models.Notification, error) {
	n, err := a.repo.MarkRead(ctx, id, func(item models.Notification) bool { return item.VisibleTo(u) })
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return n, nil
}

func (a *App) record(ctx context.Context, actor models.User, action, detail string) {
	if err := a.auditor.Record(ctx, actor, action, detail); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to record audit entry")
	}
}

func validateSendRequest(req SendRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("message is required")
	}
	if req.TargetUserID == "" && req.TargetRole == "" {
		return fmt.Errorf("a target user or role is required")
	}
	if req.TargetRole != "" && !req.TargetRole.Valid() {
		return fmt.Errorf("unknown role %s", req.TargetRole)
	}
	switch req.Type {
	case "", models.NotificationInfo, models.NotificationSuccess, models.NotificationWarning, models.NotificationAlert:
	default:
		return fmt.Errorf("unknown notification type %s", req.Type)
	}
	return nil
}
