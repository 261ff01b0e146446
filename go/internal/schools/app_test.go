package schools

import (
	"context"
	"testing"

	"github.com/pgdem/desporto/go/internal/audit"
	"github.com/pgdem/desporto/go/internal/catalog"
	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/seed"
	"github.com/pgdem/desporto/go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *testutil.AuditRecorder) {
	t.Helper()
	env := testutil.NewEnv()
	d := seed.MustLoad()
	municipalities := catalog.NewRepository(env.Store, catalog.Seeds{Municipalities: d.MunicipalitySeed()})
	rec := &testutil.AuditRecorder{}
	return NewApp(NewRepository(env.Store, d.SchoolSeed()), municipalities, rec, env.IDs), rec
}

func TestCreateSchool(t *testing.T) {
	ctx := context.Background()
	app, rec := newTestApp(t)

	s, err := app.CreateSchool(ctx, testutil.CacusoCoordinator, CreateSchoolRequest{
		Name: "Complexo Escolar do Cacuso", MunicipalityID: "cacuso",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, []string{audit.ActionSchoolCreated}, rec.Actions())

	got, err := app.GetSchool(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Name, got.Name)

	_, err = app.CreateSchool(ctx, testutil.CacusoCoordinator, CreateSchoolRequest{
		Name: "complexo escolar do cacuso", MunicipalityID: "cacuso",
	})
	assert.ErrorIs(t, err, models.ErrDuplicateEntity)
}

func TestCreateSchoolChecks(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)

	_, err := app.CreateSchool(ctx, testutil.CacusoCoordinator, CreateSchoolRequest{Name: "X", MunicipalityID: "malanje"})
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	_, err = app.CreateSchool(ctx, testutil.SchoolDirector, CreateSchoolRequest{Name: "X", MunicipalityID: "malanje"})
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	_, err = app.CreateSchool(ctx, testutil.SuperAdmin, CreateSchoolRequest{Name: "X", MunicipalityID: "luanda"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = app.CreateSchool(ctx, testutil.SuperAdmin, CreateSchoolRequest{Name: "  ", MunicipalityID: "malanje"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGetSchoolsByMunicipality(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)

	all, err := app.GetSchools(ctx, "")
	require.NoError(t, err)
	malanje, err := app.GetSchools(ctx, "malanje")
	require.NoError(t, err)

	assert.NotEmpty(t, malanje)
	assert.Less(t, len(malanje), len(all))
	for _, s := range malanje {
		assert.Equal(t, "malanje", s.MunicipalityID)
	}

	_, err = app.GetSchool(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
