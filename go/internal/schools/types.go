package schools

// CreateSchoolRequest registers a school in a municipality
type CreateSchoolRequest struct {
	Name           string `json:"name"`
	MunicipalityID string `json:"municipality_id"`
	Address        string `json:"address"`
	Director       string `json:"director"`
	Contact        string `json:"contact"`
}
