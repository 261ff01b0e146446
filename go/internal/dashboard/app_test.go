package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/seed"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/pgdem/desporto/go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	snap := &Snapshot{
		Municipalities: []models.Municipality{{ID: "malanje", Name: "Malanje"}, {ID: "cacuso", Name: "Cacuso"}, {ID: "quela", Name: "Quela"}},
		Modalities:     []models.Modality{{ID: "futebol"}},
		Schools:        []models.School{{ID: "a", MunicipalityID: "malanje"}, {ID: "b", MunicipalityID: "cacuso"}},
		Athletes: []models.Athlete{
			{ID: "1", MunicipalityID: "malanje", Gender: models.GenderFemale},
			{ID: "2", MunicipalityID: "malanje", Gender: models.GenderMale},
			{ID: "3", MunicipalityID: "cacuso", Gender: models.GenderFemale},
		},
		Games: []models.Game{
			{MunicipalityID: "cacuso", Status: models.GameStatusProvisional},
			{MunicipalityID: "cacuso", Status: models.GameStatusValidated},
		},
		Infra:         []models.Infrastructure{{ID: "i1", MunicipalityID: "quela"}},
		Announcements: []models.Announcement{{ID: "n1"}, {ID: "n2", MunicipalityID: "malanje"}},
	}

	stats := Compute(snap, "")
	assert.Equal(t, 3, stats.Municipalities)
	assert.Equal(t, 2, stats.Schools)
	assert.Equal(t, 3, stats.Athletes)
	assert.Equal(t, 1, stats.Infrastructures)
	assert.Equal(t, 2, stats.Announcements)
	assert.Equal(t, 1, stats.PendingGames)
	assert.Equal(t, GenderSplit{Male: 1, Female: 2, MalePercent: 33, FemalePercent: 67}, stats.Gender)
	assert.Equal(t, []MunicipalityCount{
		{MunicipalityID: "malanje", Name: "Malanje", Athletes: 2},
		{MunicipalityID: "cacuso", Name: "Cacuso", Athletes: 1},
		{MunicipalityID: "quela", Name: "Quela", Athletes: 0},
	}, stats.AthletesByMunicipality)

	cacuso := Compute(snap, "cacuso")
	assert.Equal(t, 3, cacuso.Municipalities)
	assert.Equal(t, 1, cacuso.Schools)
	assert.Equal(t, 1, cacuso.Athletes)
	assert.Equal(t, 1, cacuso.Announcements)
	assert.Equal(t, GenderSplit{Female: 1, FemalePercent: 100}, cacuso.Gender)
	assert.Len(t, cacuso.AthletesByMunicipality, 1)
}

func TestComputeEmpty(t *testing.T) {
	stats := Compute(&Snapshot{}, "")
	assert.Zero(t, stats.Gender)
	assert.NotNil(t, stats.AthletesByMunicipality)
}

func TestStatsFromSeededStore(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewEnv()
	d := seed.MustLoad()
	repo := NewRepository(env.Store, Seeds{
		Municipalities: d.MunicipalitySeed(),
		Modalities:     d.ModalitySeed(),
		Schools:        d.SchoolSeed(),
	})
	require.NoError(t, store.NewCollection[models.Athlete](env.Store, store.Athletes, nil).Save(ctx, []models.Athlete{
		{ID: "1", MunicipalityID: "cacuso", Gender: models.GenderMale},
	}))

	stats, err := NewApp(repo).Stats(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 14, stats.Municipalities)
	assert.Equal(t, len(d.Schools), stats.Schools)
	assert.Equal(t, "cacuso", stats.AthletesByMunicipality[0].MunicipalityID)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewService(NewApp(repo)).RegisterRoutes(r.Group("/api", api.WithUser(testutil.CacusoCoordinator)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard?municipality=malanje", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"municipality_id":"cacuso"`, "coordinators only see their municipality")
}
