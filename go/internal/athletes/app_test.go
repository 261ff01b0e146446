package athletes

import (
	"context"
	"testing"
	"time"

	"github.com/pgdem/desporto/go/internal/audit"
	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/schools"
	"github.com/pgdem/desporto/go/internal/seed"
	"github.com/pgdem/desporto/go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var birth = time.Date(2010, time.June, 1, 0, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*App, *testutil.AuditRecorder) {
	t.Helper()
	env := testutil.NewEnv()
	rec := &testutil.AuditRecorder{}
	schoolRepo := schools.NewRepository(env.Store, seed.MustLoad().SchoolSeed())
	return NewApp(NewRepository(env.Store), schoolRepo, rec, env.Clock, env.IDs), rec
}

func registration(bi string) RegisterAthleteRequest {
	return RegisterAthleteRequest{
		Name:      "Ana Kiluanje",
		BI:        bi,
		Gender:    models.GenderFemale,
		BirthDate: birth,
		SchoolID:  "4fevereiro",
	}
}

func TestRegisterAthlete(t *testing.T) {
	ctx := context.Background()
	app, rec := newTestApp(t)

	a, err := app.RegisterAthlete(ctx, testutil.SchoolDirector, registration("005123456ME041"))
	require.NoError(t, err)
	assert.Equal(t, "malanje", a.MunicipalityID, "municipality comes from the school")
	assert.Equal(t, models.AthleteStatusActive, a.Status)
	assert.Equal(t, []string{audit.ActionAthleteRegistered}, rec.Actions())

	got, err := app.GetAthlete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestRegisterAthleteDuplicateBI(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)

	_, err := app.RegisterAthlete(ctx, testutil.SuperAdmin, registration("005123456ME041"))
	require.NoError(t, err)

	dup := registration(" 005123456me041 ")
	dup.Name = "Outra Pessoa"
	_, err = app.RegisterAthlete(ctx, testutil.SuperAdmin, dup)
	require.ErrorIs(t, err, models.ErrDuplicateEntity)
	assert.Contains(t, err.Error(), "Já existe um atleta registado com o BI")

	all, err := app.GetAthletes(ctx, AthleteFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegisterAthletePermissions(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)

	// coordinator of cacuso, school in malanje
	_, err := app.RegisterAthlete(ctx, testutil.CacusoCoordinator, registration("A1"))
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	// school account, different school in its own municipality
	other := registration("A2")
	other.SchoolID = "liceu-malanje"
	_, err = app.RegisterAthlete(ctx, testutil.SchoolDirector, other)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	missing := registration("A3")
	missing.SchoolID = "nowhere"
	_, err = app.RegisterAthlete(ctx, testutil.SuperAdmin, missing)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRegisterAthleteValidation(t *testing.T) {
	app, _ := newTestApp(t)
	req := registration("")
	req.Gender = "X"
	req.BirthDate = testutil.Epoch.Add(24 * time.Hour)

	_, err := app.RegisterAthlete(context.Background(), testutil.SuperAdmin, req)
	require.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "BI is required")
	assert.Contains(t, err.Error(), "gender")
	assert.Contains(t, err.Error(), "birth date")
}

func TestUpdateAthlete(t *testing.T) {
	ctx := context.Background()
	app, rec := newTestApp(t)

	a, err := app.RegisterAthlete(ctx, testutil.SuperAdmin, registration("B1"))
	require.NoError(t, err)
	_, err = app.RegisterAthlete(ctx, testutil.SuperAdmin, registration("B2"))
	require.NoError(t, err)

	updated, err := app.UpdateAthlete(ctx, testutil.SuperAdmin, a.ID, UpdateAthleteRequest{
		Name: "Ana K.", BI: "B1", Gender: models.GenderFemale, BirthDate: birth,
		SchoolID: "escola-cacuso", Status: models.AthleteStatusInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "cacuso", updated.MunicipalityID)
	assert.Equal(t, models.AthleteStatusInactive, updated.Status)
	assert.Contains(t, rec.Actions(), audit.ActionAthleteUpdated)

	_, err = app.UpdateAthlete(ctx, testutil.SuperAdmin, a.ID, UpdateAthleteRequest{
		Name: "Ana K.", BI: "B2", Gender: models.GenderFemale, BirthDate: birth,
	})
	assert.ErrorIs(t, err, models.ErrDuplicateEntity)

	_, err = app.UpdateAthlete(ctx, testutil.SchoolDirector, a.ID, UpdateAthleteRequest{
		Name: "Ana K.", BI: "B1", Gender: models.GenderFemale, BirthDate: birth, SchoolID: "4fevereiro",
	})
	assert.ErrorIs(t, err, models.ErrPermissionDenied, "athlete now belongs to a school in cacuso")

	_, err = app.UpdateAthlete(ctx, testutil.SuperAdmin, "missing", UpdateAthleteRequest{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteAthlete(t *testing.T) {
	ctx := context.Background()
	app, rec := newTestApp(t)

	a, err := app.RegisterAthlete(ctx, testutil.SchoolDirector, registration("C1"))
	require.NoError(t, err)

	assert.ErrorIs(t, app.DeleteAthlete(ctx, testutil.CacusoCoordinator, a.ID), models.ErrPermissionDenied)
	require.NoError(t, app.DeleteAthlete(ctx, testutil.SchoolDirector, a.ID))
	assert.ErrorIs(t, app.DeleteAthlete(ctx, testutil.SchoolDirector, a.ID), models.ErrNotFound)
	assert.Equal(t, audit.ActionAthleteDeleted, rec.Actions()[len(rec.Actions())-1])
}

func TestGetAthletesFilter(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)

	male := registration("D2")
	male.Gender = models.GenderMale
	cacuso := registration("D3")
	cacuso.SchoolID = "escola-cacuso"
	for _, req := range []RegisterAthleteRequest{registration("D1"), male, cacuso} {
		_, err := app.RegisterAthlete(ctx, testutil.SuperAdmin, req)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter AthleteFilter
		want   int
	}{
		{"all", AthleteFilter{}, 3},
		{"school", AthleteFilter{SchoolID: "4fevereiro"}, 2},
		{"municipality", AthleteFilter{MunicipalityID: "cacuso"}, 1},
		{"gender", AthleteFilter{Gender: models.GenderFemale}, 2},
		{"status", AthleteFilter{Status: models.AthleteStatusInactive}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := app.GetAthletes(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}
