package models

// RankingEntry is a derived standings row for one school. It is recomputed on
// demand and never persisted.
type RankingEntry struct {
	SchoolName     string `json:"school_name"`
	MunicipalityID string `json:"municipality_id"`
	Points         int    `json:"points"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	FemaleCount    int    `json:"female_count"`
}

// GoalDifference returns goals for minus goals against
func (e RankingEntry) GoalDifference() int {
	return e.GoalsFor - e.GoalsAgainst
}
