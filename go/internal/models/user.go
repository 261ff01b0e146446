package models

import "time"

// Role is the access profile of a dashboard user
type Role string

const (
	RoleSuperAdmin      Role = "SUPER_ADMIN"
	RoleProvincialAdmin Role = "ADMIN_PROVINCIAL"
	RoleCoordinator     Role = "COORDENADOR"
	RoleSchool          Role = "ESCOLA"
)

// IsElevated reports whether the role acts at province level
func (r Role) IsElevated() bool {
	return r == RoleSuperAdmin || r == RoleProvincialAdmin
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleProvincialAdmin, RoleCoordinator, RoleSchool:
		return true
	}
	return false
}

// User represents a user in the system
type User struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Email          string    `json:"email" yaml:"email"`
	Role           Role      `json:"role" yaml:"role"`
	MunicipalityID string    `json:"municipality_id,omitempty" yaml:"municipality_id"`
	SchoolID       string    `json:"school_id,omitempty" yaml:"school_id"`
	LastLogin      time.Time `json:"last_login" yaml:"-"`
}
