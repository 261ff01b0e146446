package users

import (
	"context"
	"testing"

	"github.com/pgdem/desporto/go/internal/audit"
	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/seed"
	"github.com/pgdem/desporto/go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *testutil.AuditRecorder, *testutil.Env) {
	t.Helper()
	env := testutil.NewEnv()
	rec := &testutil.AuditRecorder{}
	return NewApp(NewRepository(env.Store, seed.MustLoad().UserSeed()), rec, env.Clock, env.IDs), rec, env
}

func TestSeededUsers(t *testing.T) {
	app, _, _ := newTestApp(t)

	u, err := app.GetUser(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "coord.cacuso@malanje.gov.ao", u.Email)
	assert.Equal(t, models.RoleCoordinator, u.Role)
	assert.Equal(t, "cacuso", u.MunicipalityID)

	_, err = app.GetUser(context.Background(), "99")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	app, rec, _ := newTestApp(t)

	req := CreateUserRequest{
		Name: "Eng. Joana Dala", Email: "Coord.Quela@malanje.gov.ao",
		Role: models.RoleCoordinator, MunicipalityID: "quela",
	}
	u, err := app.CreateUser(ctx, testutil.SuperAdmin, req)
	require.NoError(t, err)
	assert.Equal(t, "coord.quela@malanje.gov.ao", u.Email)
	assert.Equal(t, []string{audit.ActionUserCreated}, rec.Actions())

	_, err = app.CreateUser(ctx, testutil.SuperAdmin, req)
	assert.ErrorIs(t, err, models.ErrDuplicateEntity)

	_, err = app.CreateUser(ctx, testutil.ProvincialAdmin, CreateUserRequest{
		Name: "X", Email: "x@malanje.gov.ao", Role: models.RoleProvincialAdmin,
	})
	assert.ErrorIs(t, err, models.ErrPermissionDenied)
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateUserRequest
	}{
		{"missing name", CreateUserRequest{Email: "a@b.ao", Role: models.RoleSuperAdmin}},
		{"bad email", CreateUserRequest{Name: "A", Email: "not-an-email", Role: models.RoleSuperAdmin}},
		{"unknown role", CreateUserRequest{Name: "A", Email: "a@b.ao", Role: "GUEST"}},
		{"coordinator without municipality", CreateUserRequest{Name: "A", Email: "a@b.ao", Role: models.RoleCoordinator}},
		{"school without school", CreateUserRequest{Name: "A", Email: "a@b.ao", Role: models.RoleSchool, MunicipalityID: "malanje"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := newTestApp(t)
			_, err := app.CreateUser(context.Background(), testutil.SuperAdmin, tt.req)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestUpdateAndDeleteUser(t *testing.T) {
	ctx := context.Background()
	app, rec, _ := newTestApp(t)

	u, err := app.UpdateUser(ctx, testutil.SuperAdmin, "2", UpdateUserRequest{
		Name: "Eng. Pedro Santos", Email: "coord.cacuso@malanje.gov.ao",
		Role: models.RoleCoordinator, MunicipalityID: "calandula",
	})
	require.NoError(t, err)
	assert.Equal(t, "calandula", u.MunicipalityID)

	_, err = app.UpdateUser(ctx, testutil.SuperAdmin, "2", UpdateUserRequest{
		Name: "Eng. Pedro Santos", Email: "admin@malanje.gov.ao", Role: models.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, models.ErrDuplicateEntity)

	assert.ErrorIs(t, app.DeleteUser(ctx, testutil.CacusoCoordinator, "3"), models.ErrPermissionDenied)
	assert.ErrorIs(t, app.DeleteUser(ctx, testutil.SuperAdmin, testutil.SuperAdmin.ID), models.ErrValidation)
	require.NoError(t, app.DeleteUser(ctx, testutil.SuperAdmin, "3"))
	assert.ErrorIs(t, app.DeleteUser(ctx, testutil.SuperAdmin, "3"), models.ErrNotFound)

	assert.Equal(t, []string{audit.ActionUserUpdated, audit.ActionUserDeleted}, rec.Actions())
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	app, rec, env := newTestApp(t)

	u, err := app.Login(ctx, " DIRECAO@escola4fevereiro.ao ")
	require.NoError(t, err)
	assert.Equal(t, "3", u.ID)
	assert.Equal(t, env.Clock.Now(), u.LastLogin)
	assert.Equal(t, []string{audit.ActionLogin}, rec.Actions())
	assert.Equal(t, "3", rec.Entries[0].ActorID)

	_, err = app.Login(ctx, "ninguem@malanje.gov.ao")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListUsersRequiresSuperAdmin(t *testing.T) {
	app, _, _ := newTestApp(t)

	users, err := app.ListUsers(context.Background(), testutil.SuperAdmin)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = app.ListUsers(context.Background(), testutil.ProvincialAdmin)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	app, rec, _ := newTestApp(t)

	req := RegisterRequest{
		InstitutionName: "Escola Primária de Quela",
		MunicipalityID:  " Quela ",
		ResponsibleName: "Prof. João Cassoma",
		Email:           "Direcao@EscolaQuela.ao",
	}
	u, err := app.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSchool, u.Role)
	assert.Equal(t, "quela", u.MunicipalityID)
	assert.Equal(t, "direcao@escolaquela.ao", u.Email)
	assert.Empty(t, u.SchoolID)
	require.Len(t, rec.Entries, 1)
	assert.Equal(t, audit.ActionUserRegistered, rec.Entries[0].Action)
	assert.Equal(t, u.ID, rec.Entries[0].ActorID)

	// the account can log in straight away
	_, err = app.Login(ctx, "direcao@escolaquela.ao")
	require.NoError(t, err)

	_, err = app.Register(ctx, req)
	assert.ErrorIs(t, err, models.ErrDuplicateEntity)

	// seeded accounts are taken too
	req.Email = "admin@malanje.gov.ao"
	_, err = app.Register(ctx, req)
	assert.ErrorIs(t, err, models.ErrDuplicateEntity)
}

func TestRegisterValidation(t *testing.T) {
	valid := RegisterRequest{
		InstitutionName: "Escola", MunicipalityID: "quela",
		ResponsibleName: "Prof. X", Email: "x@escola.ao",
	}
	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
	}{
		{"missing institution", func(r *RegisterRequest) { r.InstitutionName = " " }},
		{"missing municipality", func(r *RegisterRequest) { r.MunicipalityID = "" }},
		{"missing responsible", func(r *RegisterRequest) { r.ResponsibleName = "" }},
		{"bad email", func(r *RegisterRequest) { r.Email = "x.escola.ao" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, rec, _ := newTestApp(t)
			req := valid
			tt.mutate(&req)
			_, err := app.Register(context.Background(), req)
			assert.ErrorIs(t, err, models.ErrValidation)
			assert.Empty(t, rec.Entries)
		})
	}
}
