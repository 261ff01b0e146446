package catalog

import "github.com/pgdem/desporto/go/internal/models"

type CreateModalityRequest struct {
	Name string              `json:"name"`
	Icon string              `json:"icon"`
	Type models.ModalityType `json:"type"`
}

type CreateAgeGroupRequest struct {
	Name       string `json:"name"`
	MinAge     int    `json:"min_age"`
	MaxAge     int    `json:"max_age"`
	ModalityID string `json:"modality_id"`
}

// Seeds supplies the default contents of the catalog collections
type Seeds struct {
	Municipalities func() []models.Municipality
	Modalities     func() []models.Modality
	AgeGroups      func() []models.AgeGroup
}
