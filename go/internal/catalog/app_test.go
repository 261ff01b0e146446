package catalog

import (
	"context"
	"testing"

	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/seed"
	"github.com/pgdem/desporto/go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	env := testutil.NewEnv()
	d := seed.MustLoad()
	repo := NewRepository(env.Store, Seeds{
		Municipalities: d.MunicipalitySeed(),
		Modalities:     d.ModalitySeed(),
		AgeGroups:      d.AgeGroupSeed(),
	})
	return NewApp(repo, env.IDs)
}

func TestSeededCatalog(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	municipalities, err := app.GetMunicipalities(ctx)
	require.NoError(t, err)
	assert.Len(t, municipalities, 14)

	m, err := app.GetMunicipality(ctx, "cacuso")
	require.NoError(t, err)
	assert.Equal(t, "Cacuso", m.Name)

	_, err = app.GetMunicipality(ctx, "luanda")
	assert.ErrorIs(t, err, models.ErrNotFound)

	groups, err := app.GetAgeGroups(ctx, "futebol")
	require.NoError(t, err)
	require.NotEmpty(t, groups)
	for _, g := range groups {
		assert.Equal(t, "futebol", g.ModalityID)
	}
}

func TestCreateModality(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	m, err := app.CreateModality(ctx, testutil.ProvincialAdmin, CreateModalityRequest{Name: "Hóquei em Patins", Type: models.ModalityTypeTeam})
	require.NoError(t, err)
	assert.Equal(t, "h-quei-em-patins", m.ID)

	_, err = app.CreateModality(ctx, testutil.SuperAdmin, CreateModalityRequest{Name: "futebol", Type: models.ModalityTypeTeam})
	assert.ErrorIs(t, err, models.ErrDuplicateEntity)

	_, err = app.CreateModality(ctx, testutil.CacusoCoordinator, CreateModalityRequest{Name: "Judo", Type: models.ModalityTypeIndividual})
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	_, err = app.CreateModality(ctx, testutil.SuperAdmin, CreateModalityRequest{Name: "Judo", Type: "OUTRO"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateAgeGroup(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	g, err := app.CreateAgeGroup(ctx, testutil.SuperAdmin, CreateAgeGroupRequest{Name: "Juniores", MinAge: 18, MaxAge: 19, ModalityID: "futebol"})
	require.NoError(t, err)
	assert.True(t, g.Contains(18))
	assert.False(t, g.Contains(20))

	_, err = app.CreateAgeGroup(ctx, testutil.SuperAdmin, CreateAgeGroupRequest{Name: "X", MinAge: 15, MaxAge: 12, ModalityID: "futebol"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = app.CreateAgeGroup(ctx, testutil.SuperAdmin, CreateAgeGroupRequest{Name: "X", MinAge: 10, MaxAge: 12, ModalityID: "curling"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = app.CreateAgeGroup(ctx, testutil.SuperAdmin, CreateAgeGroupRequest{Name: "juniores", MinAge: 18, MaxAge: 19, ModalityID: "futebol"})
	assert.ErrorIs(t, err, models.ErrDuplicateEntity)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "tenis-de-mesa", slug("Tenis de Mesa"))
	assert.Equal(t, "3x3", slug("  3x3 "))
	assert.Equal(t, "", slug("??"))
}
