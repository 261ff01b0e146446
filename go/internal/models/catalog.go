package models

// Municipality is one of the fixed subdivisions of the province
type Municipality struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Status      string `json:"status" yaml:"status"`
	Coordinator string `json:"coordinator" yaml:"coordinator"`
}

// ModalityType distinguishes team sports from individual ones
type ModalityType string

const (
	ModalityTypeTeam       ModalityType = "COLETIVA"
	ModalityTypeIndividual ModalityType = "INDIVIDUAL"
)

// Modality is a sport or competitive discipline (football, chess, ...)
type Modality struct {
	ID     string       `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name"`
	Icon   string       `json:"icon" yaml:"icon"`
	Status string       `json:"status" yaml:"status"`
	Type   ModalityType `json:"type" yaml:"type"`
}

// AgeGroup (escalão) is an age-bounded category within a single modality
type AgeGroup struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	MinAge     int    `json:"min_age" yaml:"min_age"`
	MaxAge     int    `json:"max_age" yaml:"max_age"`
	ModalityID string `json:"modality_id" yaml:"modality_id"`
}

// Contains reports whether age falls within the group's bounds, inclusive
func (g AgeGroup) Contains(age int) bool {
	return age >= g.MinAge && age <= g.MaxAge
}
