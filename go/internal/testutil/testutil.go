// Package testutil provides fixtures shared by package tests
package testutil

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pgdem/desporto/go/internal/kvstore"
	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
)

// Epoch is the fake clock's starting instant
var Epoch = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

// Env bundles an in-memory store with deterministic time and ids
type Env struct {
	Medium *kvstore.Memory
	Store  *store.Store
	Clock  *clockwork.FakeClock
	IDs    *store.SequenceIDs
}

// NewEnv creates a fresh in-memory environment
func NewEnv() *Env {
	clock := clockwork.NewFakeClockAt(Epoch)
	medium := kvstore.NewMemory()
	return &Env{
		Medium: medium,
		Store:  store.NewStore(medium, store.NewBroker(), store.WithClock(clock)),
		Clock:  clock,
		IDs:    &store.SequenceIDs{Prefix: "id"},
	}
}

// Users matching the seeded accounts, plus a provincial administrator
var (
	SuperAdmin = models.User{
		ID: "1", Name: "Dr. António Manuel", Email: "admin@malanje.gov.ao",
		Role: models.RoleSuperAdmin,
	}
	ProvincialAdmin = models.User{
		ID: "4", Name: "Dra. Helena Quissanga", Email: "provincial@malanje.gov.ao",
		Role: models.RoleProvincialAdmin,
	}
	CacusoCoordinator = models.User{
		ID: "2", Name: "Eng. Pedro Santos", Email: "coord.cacuso@malanje.gov.ao",
		Role: models.RoleCoordinator, MunicipalityID: "cacuso",
	}
	SchoolDirector = models.User{
		ID: "3", Name: "Prof. Maria Isabel", Email: "direcao@escola4fevereiro.ao",
		Role: models.RoleSchool, MunicipalityID: "malanje", SchoolID: "4fevereiro",
	}
)

// Users returns the fixture users in id order
func Users() []models.User {
	return []models.User{SuperAdmin, CacusoCoordinator, SchoolDirector, ProvincialAdmin}
}

// Recorded is an audit call captured by AuditRecorder
type Recorded struct {
	ActorID string
	Action  string
	Detail  string
}
