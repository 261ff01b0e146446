package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
)

// Repository handles user persistence in the users collection
type Repository struct {
	users *store.Collection[models.User]
}

// NewRepository creates a new users repository seeded with seed on first access
func NewRepository(s *store.Store, seed func() []models.User) *Repository {
	return &Repository{
		users: store.NewCollection(s, store.Users, seed),
	}
}

// ListUsers returns every user in stored order
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := r.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user by ID
func (r *Repository) GetUser(ctx context.Context, id string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.ID == id }, "user "+id)
}

// GetUserByEmail retrieves a user by e-mail, case-insensitively
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return strings.EqualFold(u.Email, email) }, "user with email "+email)
}

// CreateUser appends user unless the e-mail is taken
func (r *Repository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	err := r.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		if err := checkEmail(users, user.Email, ""); err != nil {
			return nil, err
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies fn to the stored user with id. The e-mail stays unique.
func (r *Repository) UpdateUser(ctx context.Context, id string, fn func(u *models.User) error) (*models.User, error) {
	var updated models.User
	err := r.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID != id {
				continue
			}
			next := users[i]
			if err := fn(&next); err != nil {
				return nil, err
			}
			if err := checkEmail(users, next.Email, id); err != nil {
				return nil, err
			}
			next.ID = id
			users[i] = next
			updated = next
			return users, nil
		}
		return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser deletes a user by ID
func (r *Repository) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	var removed models.User
	err := r.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID == id {
				removed = users[i]
				return append(users[:i], users[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func (r *Repository) find(ctx context.Context, match func(models.User) bool, what string) (*models.User, error) {
	users, err := r.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(users[i]) {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("%s: %w", what, models.ErrNotFound)
}

func checkEmail(users []models.User, email, exceptID string) error {
	for _, u := range users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return fmt.Errorf("%w: user with email %s already exists", models.ErrDuplicateEntity, email)
		}
	}
	return nil
}
