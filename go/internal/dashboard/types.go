package dashboard

import "github.com/pgdem/desporto/go/internal/models"

// Stats summarises the province, or one municipality, for the landing page
type Stats struct {
	MunicipalityID  string `json:"municipality_id,omitempty"`
	Municipalities  int    `json:"municipalities"`
	Schools         int    `json:"schools"`
	Athletes        int    `json:"athletes"`
	Modalities      int    `json:"modalities"`
	Infrastructures int    `json:"infrastructures"`
	Announcements   int    `json:"announcements"`
	PendingGames    int    `json:"pending_games"`

	Gender GenderSplit `json:"gender"`
	// AthletesByMunicipality is sorted by count descending, then name
	AthletesByMunicipality []MunicipalityCount `json:"athletes_by_municipality"`
}

// GenderSplit counts athletes by gender. Percentages are whole numbers and
// both zero when there are no athletes.
type GenderSplit struct {
	Male          int `json:"male"`
	Female        int `json:"female"`
	MalePercent   int `json:"male_percent"`
	FemalePercent int `json:"female_percent"`
}

type MunicipalityCount struct {
	MunicipalityID string `json:"municipality_id"`
	Name           string `json:"name"`
	Athletes       int    `json:"athletes"`
}

// Seeds supplies the defaults of the seeded collections the dashboard reads
type Seeds struct {
	Municipalities func() []models.Municipality
	Modalities     func() []models.Modality
	Schools        func() []models.School
}
