package games

import (
	"time"

	"github.com/pgdem/desporto/go/internal/models"
)

// ScheduleGameRequest creates a fixture that has not been played yet
type ScheduleGameRequest struct {
	ModalityID     string    `json:"modality_id"`
	MunicipalityID string    `json:"municipality_id"`
	HomeSchool     string    `json:"home_school"`
	AwaySchool     string    `json:"away_school"`
	Date           time.Time `json:"date"`
}

// ValidateGameRequest is the body of POST /games/:id/validate
type ValidateGameRequest struct {
	Status models.GameStatus `json:"status"`
}

// GameFilter narrows GetGames. Zero values match everything.
type GameFilter struct {
	ModalityID     string
	MunicipalityID string
	Status         models.GameStatus
	// School matches either side of the fixture
	School string
}

func (f GameFilter) matches(g models.Game) bool {
	if f.ModalityID != "" && g.ModalityID != f.ModalityID {
		return false
	}
	if f.MunicipalityID != "" && g.MunicipalityID != f.MunicipalityID {
		return false
	}
	if f.Status != "" && g.Status != f.Status {
		return false
	}
	if f.School != "" && g.HomeSchool != f.School && g.AwaySchool != f.School {
		return false
	}
	return true
}
