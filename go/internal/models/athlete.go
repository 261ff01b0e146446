package models

import "time"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

type AthleteStatus string

const (
	AthleteStatusActive   AthleteStatus = "ATIVO"
	AthleteStatusInactive AthleteStatus = "INATIVO"
)

// Athlete is a student registered to compete for exactly one school.
// BI is the national identity card number and is unique across all athletes.
type Athlete struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	BI             string        `json:"bi"`
	Gender         Gender        `json:"gender"`
	BirthDate      time.Time     `json:"birth_date"`
	SchoolID       string        `json:"school_id"`
	MunicipalityID string        `json:"municipality_id"`
	Status         AthleteStatus `json:"status"`
}
