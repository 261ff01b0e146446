package audit

import (
	"context"
	"fmt"
	"testing"

	"github.com/pgdem/desporto/go/internal/models"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/pgdem/desporto/go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *testutil.Env) {
	t.Helper()
	env := testutil.NewEnv()
	return NewApp(NewRepository(env.Store), env.Clock, env.IDs, "test"), env
}

func TestRecordStampsEntry(t *testing.T) {
	ctx := context.Background()
	app, env := newTestApp(t)

	require.NoError(t, app.Record(ctx, testutil.CacusoCoordinator, ActionGameResultSubmitted, "Game g1"))
	require.NoError(t, app.Record(ctx, testutil.SuperAdmin, ActionGameValidated, "Game g1"))

	logs, err := app.List(ctx, testutil.SuperAdmin, ListFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, ActionGameValidated, logs[0].Action, "most recent first")
	assert.Equal(t, models.OriginProvincial, logs[0].Origin)
	assert.Equal(t, "cacuso", logs[1].Origin)
	assert.Equal(t, "Eng. Pedro Santos", logs[1].ActorName)
	assert.Equal(t, "test", logs[1].Environment)
	assert.Equal(t, env.Clock.Now(), logs[1].Timestamp)
	assert.NotEqual(t, logs[0].ID, logs[1].ID)
}

func TestRecordKeepsMostRecentEntries(t *testing.T) {
	ctx := context.Background()
	app, env := newTestApp(t)

	full := make([]models.AuditLog, 0, MaxEntries)
	for i := MaxEntries; i >= 1; i-- {
		full = append(full, models.AuditLog{ID: fmt.Sprintf("old-%d", i), Action: ActionLogin, Detail: fmt.Sprintf("entry %d", i)})
	}
	require.NoError(t, store.NewCollection[models.AuditLog](env.Store, store.Audit, nil).Save(ctx, full))

	require.NoError(t, app.Record(ctx, testutil.SuperAdmin, ActionLogin, fmt.Sprintf("entry %d", MaxEntries+1)))

	logs, err := app.List(ctx, testutil.SuperAdmin, ListFilter{})
	require.NoError(t, err)
	require.Len(t, logs, MaxEntries)
	assert.Equal(t, fmt.Sprintf("entry %d", MaxEntries+1), logs[0].Detail)
	assert.Equal(t, "entry 2", logs[MaxEntries-1].Detail, "the oldest entry is dropped")
}

func TestListRequiresElevatedRole(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := app.List(context.Background(), testutil.CacusoCoordinator, ListFilter{})
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	_, err = app.List(context.Background(), testutil.ProvincialAdmin, ListFilter{})
	assert.NoError(t, err)
}

func TestListFilter(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)

	require.NoError(t, app.Record(ctx, testutil.CacusoCoordinator, ActionAthleteRegistered, "a"))
	require.NoError(t, app.Record(ctx, testutil.SchoolDirector, ActionAthleteRegistered, "b"))
	require.NoError(t, app.Record(ctx, testutil.SchoolDirector, ActionGameResultSubmitted, "c"))

	logs, err := app.List(ctx, testutil.SuperAdmin, ListFilter{Action: ActionAthleteRegistered})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = app.List(ctx, testutil.SuperAdmin, ListFilter{Origin: "malanje", Limit: 1})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "c", logs[0].Detail)
}
