package models

import "time"

// GameStatus represents where a game is in its homologation lifecycle
type GameStatus string

const (
	GameStatusScheduled   GameStatus = "AGENDADO"
	GameStatusProvisional GameStatus = "PROVISORIO"
	GameStatusValidated   GameStatus = "VALIDADO"
	GameStatusRejected    GameStatus = "REJEITADO"
)

// IsTerminal reports whether no transition is defined out of the status
func (s GameStatus) IsTerminal() bool {
	return s == GameStatusValidated || s == GameStatusRejected
}

// Game is a fixture between two schools of the same municipality in one modality.
// Schools are referenced by name.
type Game struct {
	ID             string     `json:"id"`
	ModalityID     string     `json:"modality_id"`
	MunicipalityID string     `json:"municipality_id"`
	HomeSchool     string     `json:"home_school"`
	AwaySchool     string     `json:"away_school"`
	HomeScore      int        `json:"home_score"`
	AwayScore      int        `json:"away_score"`
	Date           time.Time  `json:"date"`
	Status         GameStatus `json:"status"`
	UpdatedBy      string     `json:"updated_by"`
	ValidatedBy    *string    `json:"validated_by,omitempty"`
}
