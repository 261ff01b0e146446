package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	blob := []byte(`[1,2]`)
	require.NoError(t, m.Set(ctx, "k", blob))
	blob[0] = 'x'

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1,2]`, string(got), "stored value must not alias the caller's slice")

	got[0] = 'y'
	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, `[1,2]`, string(again))

	require.NoError(t, m.Clear(ctx))
	assert.Empty(t, m.Keys())
}

func TestNATSKeySanitizes(t *testing.T) {
	assert.Equal(t, "pgdem_v1_games", natsKey("pgdem_v1_games"))
}
