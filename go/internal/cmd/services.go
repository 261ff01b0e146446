package main

import (
	"github.com/jonboulle/clockwork"
	"github.com/pgdem/desporto/go/internal/athletes"
	"github.com/pgdem/desporto/go/internal/audit"
	"github.com/pgdem/desporto/go/internal/catalog"
	"github.com/pgdem/desporto/go/internal/dashboard"
	"github.com/pgdem/desporto/go/internal/games"
	"github.com/pgdem/desporto/go/internal/notifications"
	"github.com/pgdem/desporto/go/internal/ranking"
	"github.com/pgdem/desporto/go/internal/schools"
	"github.com/pgdem/desporto/go/internal/seed"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/pgdem/desporto/go/internal/users"
)

type Services struct {
	UsersApp *users.App

	Users         *users.Service
	Audit         *audit.Service
	Notifications *notifications.Service
	Catalog       *catalog.Service
	Schools       *schools.Service
	Athletes      *athletes.Service
	Games         *games.Service
	Ranking       *ranking.Service
	Dashboard     *dashboard.Service
}

func setupServices(s *store.Store, defaults *seed.Defaults, environment string) *Services {
	// Store → Repository → App → Service
	clock := clockwork.NewRealClock()
	ids := store.UUIDGenerator{}

	// Audit and notifications are consumed by every other app
	auditApp := audit.NewApp(audit.NewRepository(s), clock, ids, environment)
	notificationsApp := notifications.NewApp(notifications.NewRepository(s), auditApp, clock, ids)

	// Catalog
	catalogRepo := catalog.NewRepository(s, catalog.Seeds{
		Municipalities: defaults.MunicipalitySeed(),
		Modalities:     defaults.ModalitySeed(),
		AgeGroups:      defaults.AgeGroupSeed(),
	})
	catalogApp := catalog.NewApp(catalogRepo, ids)

	// Users
	usersApp := users.NewApp(users.NewRepository(s, defaults.UserSeed()), auditApp, clock, ids)

	// Schools
	schoolsApp := schools.NewApp(schools.NewRepository(s, defaults.SchoolSeed()), catalogApp, auditApp, ids)

	// Athletes
	athletesApp := athletes.NewApp(athletes.NewRepository(s), schoolsApp, auditApp, clock, ids)

	// Games
	gamesApp := games.NewApp(games.NewRepository(s), auditApp, notificationsApp, clock, ids)

	// Ranking
	rankingApp := ranking.NewApp(ranking.NewRepository(s, defaults.SchoolSeed()))

	// Dashboard
	dashboardApp := dashboard.NewApp(dashboard.NewRepository(s, dashboard.Seeds{
		Municipalities: defaults.MunicipalitySeed(),
		Modalities:     defaults.ModalitySeed(),
		Schools:        defaults.SchoolSeed(),
	}))

	return &Services{
		UsersApp:      usersApp,
		Users:         users.NewService(usersApp),
		Audit:         audit.NewService(auditApp),
		Notifications: notifications.NewService(notificationsApp),
		Catalog:       catalog.NewService(catalogApp),
		Schools:       schools.NewService(schoolsApp),
		Athletes:      athletes.NewService(athletesApp),
		Games:         games.NewService(gamesApp),
		Ranking:       ranking.NewService(rankingApp),
		Dashboard:     dashboard.NewService(dashboardApp),
	}
}
