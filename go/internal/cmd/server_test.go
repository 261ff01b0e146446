package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pgdem/desporto/go/internal/api"
	"github.com/pgdem/desporto/go/internal/gateway"
	"github.com/pgdem/desporto/go/internal/kvstore"
	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/seed"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := defaultConfig()
	s := store.NewStore(kvstore.NewMemory(), store.NewBroker())
	services := setupServices(s, seed.MustLoad(), "test")
	cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())

	srv := httptest.NewServer(setupServer(cfg, services, gateway.NewWebSocketHandler(cm)).Handler)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, userID string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(api.UserHeader, userID)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIRequiresKnownUser(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodGet, "/api/games", "", nil).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodGet, "/api/games", "nobody", nil).StatusCode)

	resp := do(t, srv, http.MethodGet, "/api/me", "1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, models.RoleSuperAdmin, me.Role)
}

func TestLoginIsPublic(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, srv, http.MethodPost, "/api/login", "", map[string]string{"email": "admin@malanje.gov.ao"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResultFlowThroughRanking(t *testing.T) {
	srv := newTestServer(t)

	// coordinator of Cacuso submits, stays provisional
	resp := do(t, srv, http.MethodPost, "/api/games/result", "2", models.Game{
		ModalityID: "futebol", MunicipalityID: "cacuso",
		HomeSchool: "Escola Cacuso", AwaySchool: "Liceu Visitante",
		HomeScore: 2, AwayScore: 0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var game models.Game
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&game))
	assert.Equal(t, models.GameStatusProvisional, game.Status)

	var ranking []models.RankingEntry
	resp = do(t, srv, http.MethodGet, "/api/rankings/futebol", "1", nil)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ranking))
	assert.Empty(t, ranking)

	// super admin validates
	resp = do(t, srv, http.MethodPost, "/api/games/"+game.ID+"/validate", "1", map[string]string{"status": "VALIDADO"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/rankings/futebol?municipality=cacuso", "1", nil)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ranking))
	require.Len(t, ranking, 2)
	assert.Equal(t, "Escola Cacuso", ranking[0].SchoolName)
	assert.Equal(t, 3, ranking[0].Points)

	// validating twice is a conflict
	resp = do(t, srv, http.MethodPost, "/api/games/"+game.ID+"/validate", "1", map[string]string{"status": "REJEITADO"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSchoolUserCannotManageUsers(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, srv, http.MethodGet, "/api/users", "3", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRegisterIsPublic(t *testing.T) {
	srv := newTestServer(t)
	body := map[string]string{
		"institution_name": "Escola de Quirima", "municipality_id": "quirima",
		"responsible_name": "Prof. Ana", "email": "ana@escolaquirima.ao",
	}
	assert.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/register", "", body).StatusCode)
	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodPost, "/api/register", "", body).StatusCode)
}
