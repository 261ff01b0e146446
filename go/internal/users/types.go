package users

import "github.com/pgdem/desporto/go/internal/models"

// CreateUserRequest represents the data needed to create a new user
type CreateUserRequest struct {
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Role           models.Role `json:"role"`
	MunicipalityID string      `json:"municipality_id"`
	SchoolID       string      `json:"school_id"`
}

// UpdateUserRequest represents the data that can be updated for a user
type UpdateUserRequest struct {
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Role           models.Role `json:"role"`
	MunicipalityID string      `json:"municipality_id"`
	SchoolID       string      `json:"school_id"`
}

// LoginRequest identifies a user by e-mail. There is no credential check.
type LoginRequest struct {
	Email string `json:"email"`
}

// RegisterRequest is a self-service sign-up for a school account. The account
// is created without a school; an administrator links it later.
type RegisterRequest struct {
	InstitutionName string `json:"institution_name"`
	MunicipalityID  string `json:"municipality_id"`
	ResponsibleName string `json:"responsible_name"`
	Email           string `json:"email"`
}
