package ranking

import (
	"sort"

	"github.com/pgdem/desporto/go/internal/models"
)

// Points awarded per result
const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// Calculate builds the standings of a modality from its validated games,
// optionally restricted to one municipality (empty means province-wide).
//
// Entries are created the first time a school appears; their municipality is
// the one of that first game. Ties on points and wins keep that
// first-appearance order. FemaleCount counts every female athlete of the
// school regardless of modality.
func Calculate(games []models.Game, athletes []models.Athlete, schools []models.School, modalityID, municipalityID string) []models.RankingEntry {
	females := femaleCountBySchool(athletes, schools)

	index := make(map[string]int)
	entries := make([]models.RankingEntry, 0)
	entryFor := func(school, municipality string) int {
		i, ok := index[school]
		if !ok {
			i = len(entries)
			index[school] = i
			entries = append(entries, models.RankingEntry{
				SchoolName:     school,
				MunicipalityID: municipality,
				FemaleCount:    females(school, municipality),
			})
		}
		return i
	}

	for _, g := range games {
		if g.Status != models.GameStatusValidated || g.ModalityID != modalityID {
			continue
		}
		if municipalityID != "" && g.MunicipalityID != municipalityID {
			continue
		}

		hi := entryFor(g.HomeSchool, g.MunicipalityID)
		ai := entryFor(g.AwaySchool, g.MunicipalityID)
		home, away := &entries[hi], &entries[ai]

		home.Played++
		away.Played++
		home.GoalsFor += g.HomeScore
		home.GoalsAgainst += g.AwayScore
		away.GoalsFor += g.AwayScore
		away.GoalsAgainst += g.HomeScore

		switch {
		case g.HomeScore > g.AwayScore:
			award(home, away)
		case g.AwayScore > g.HomeScore:
			award(away, home)
		default:
			home.Draws++
			away.Draws++
			home.Points += PointsDraw
			away.Points += PointsDraw
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Wins > entries[j].Wins
	})
	return entries
}

func award(winner, loser *models.RankingEntry) {
	winner.Wins++
	winner.Points += PointsWin
	loser.Losses++
	loser.Points += PointsLoss
}

type schoolKey struct {
	name         string
	municipality string
}

// femaleCountBySchool resolves a school name to its id through schools and
// counts its female athletes. Names are only unique within a municipality, so
// the game's municipality is matched first, then the name alone, then the name
// is treated as the id.
func femaleCountBySchool(athletes []models.Athlete, schools []models.School) func(name, municipality string) int {
	byID := make(map[string]int)
	for _, a := range athletes {
		if a.Gender == models.GenderFemale {
			byID[a.SchoolID]++
		}
	}
	idByKey := make(map[schoolKey]string, len(schools))
	idByName := make(map[string]string, len(schools))
	for _, s := range schools {
		k := schoolKey{name: s.Name, municipality: s.MunicipalityID}
		if _, dup := idByKey[k]; !dup {
			idByKey[k] = s.ID
		}
		if _, dup := idByName[s.Name]; !dup {
			idByName[s.Name] = s.ID
		}
	}
	return func(name, municipality string) int {
		if id, ok := idByKey[schoolKey{name: name, municipality: municipality}]; ok {
			return byID[id]
		}
		if id, ok := idByName[name]; ok {
			return byID[id]
		}
		return byID[name]
	}
}
