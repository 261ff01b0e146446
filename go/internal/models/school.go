package models

// School represents an education institution taking part in school sports
type School struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	MunicipalityID string `json:"municipality_id" yaml:"municipality_id"`
	Address        string `json:"address" yaml:"address"`
	Director       string `json:"director" yaml:"director"`
	Contact        string `json:"contact" yaml:"contact"`
}
