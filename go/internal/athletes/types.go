package athletes

import (
	"time"

	"github.com/pgdem/desporto/go/internal/models"
)

// RegisterAthleteRequest enrols a student with a school. The athlete's
// municipality is always the school's.
type RegisterAthleteRequest struct {
	Name      string        `json:"name"`
	BI        string        `json:"bi"`
	Gender    models.Gender `json:"gender"`
	BirthDate time.Time     `json:"birth_date"`
	SchoolID  string        `json:"school_id"`
}

// UpdateAthleteRequest replaces an athlete's editable fields
type UpdateAthleteRequest struct {
	Name      string               `json:"name"`
	BI        string               `json:"bi"`
	Gender    models.Gender        `json:"gender"`
	BirthDate time.Time            `json:"birth_date"`
	SchoolID  string               `json:"school_id"`
	Status    models.AthleteStatus `json:"status"`
}

// AthleteFilter narrows GetAthletes. Zero values match everything.
type AthleteFilter struct {
	SchoolID       string
	MunicipalityID string
	Gender         models.Gender
	Status         models.AthleteStatus
}

func (f AthleteFilter) matches(a models.Athlete) bool {
	if f.SchoolID != "" && a.SchoolID != f.SchoolID {
		return false
	}
	if f.MunicipalityID != "" && a.MunicipalityID != f.MunicipalityID {
		return false
	}
	if f.Gender != "" && a.Gender != f.Gender {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}
