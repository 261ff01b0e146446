// Package dashboard aggregates headline figures across collections.
package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/pgdem/desporto/go/internal/models"
)

// DashboardRepository defines what the app layer needs from the repository
type DashboardRepository interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// App computes dashboard statistics
type App struct {
	repo DashboardRepository
}

// NewApp creates a new dashboard App
func NewApp(repo DashboardRepository) *App {
	return &App{repo: repo}
}

// Stats summarises the province, or a single municipality when municipalityID
// is set. The municipality and modality counts are always province-wide.
func (a *App) Stats(ctx context.Context, municipalityID string) (*Stats, error) {
	snap, err := a.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return Compute(snap, municipalityID), nil
}

// Compute derives Stats from a snapshot
func Compute(snap *Snapshot, municipalityID string) *Stats {
	in := func(id string) bool { return municipalityID == "" || id == municipalityID }

	stats := &Stats{
		MunicipalityID: municipalityID,
		Municipalities: len(snap.Municipalities),
		Modalities:     len(snap.Modalities),
	}
	for _, s := range snap.Schools {
		if in(s.MunicipalityID) {
			stats.Schools++
		}
	}
	for _, i := range snap.Infra {
		if in(i.MunicipalityID) {
			stats.Infrastructures++
		}
	}
	for _, n := range snap.Announcements {
		if n.MunicipalityID == "" || in(n.MunicipalityID) {
			stats.Announcements++
		}
	}
	for _, g := range snap.Games {
		if g.Status == models.GameStatusProvisional && in(g.MunicipalityID) {
			stats.PendingGames++
		}
	}

	perMunicipality := make(map[string]int)
	for _, athlete := range snap.Athletes {
		if !in(athlete.MunicipalityID) {
			continue
		}
		stats.Athletes++
		perMunicipality[athlete.MunicipalityID]++
		switch athlete.Gender {
		case models.GenderMale:
			stats.Gender.Male++
		case models.GenderFemale:
			stats.Gender.Female++
		}
	}
	if total := stats.Gender.Male + stats.Gender.Female; total > 0 {
		stats.Gender.FemalePercent = (stats.Gender.Female*100 + total/2) / total
		stats.Gender.MalePercent = 100 - stats.Gender.FemalePercent
	}

	stats.AthletesByMunicipality = make([]MunicipalityCount, 0, len(snap.Municipalities))
	for _, m := range snap.Municipalities {
		if !in(m.ID) {
			continue
		}
		stats.AthletesByMunicipality = append(stats.AthletesByMunicipality, MunicipalityCount{
			MunicipalityID: m.ID,
			Name:           m.Name,
			Athletes:       perMunicipality[m.ID],
		})
	}
	sort.SliceStable(stats.AthletesByMunicipality, func(i, j int) bool {
		a, b := stats.AthletesByMunicipality[i], stats.AthletesByMunicipality[j]
		if a.Athletes != b.Athletes {
			return a.Athletes > b.Athletes
		}
		return a.Name < b.Name
	})
	return stats
}
