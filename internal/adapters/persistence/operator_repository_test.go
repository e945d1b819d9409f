package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-fleet/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-fleet/internal/infrastructure/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestOperatorRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormOperatorRepository(db)

	err := repo.SaveCredential(context.Background(), "operator-1", "token-abc")
	require.NoError(t, err)

	token, err := repo.FindCredential(context.Background(), "operator-1")
	require.NoError(t, err)
	assert.Equal(t, "token-abc", token)
}

func TestOperatorRepository_SaveOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormOperatorRepository(db)

	require.NoError(t, repo.SaveCredential(context.Background(), "operator-1", "stale"))
	require.NoError(t, repo.SaveCredential(context.Background(), "operator-1", "rotated"))

	token, err := repo.FindCredential(context.Background(), "operator-1")
	require.NoError(t, err)
	assert.Equal(t, "rotated", token)
}

func TestOperatorRepository_FindMissing(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormOperatorRepository(db)

	token, err := repo.FindCredential(context.Background(), "nobody")

	// A missing credential is not an error; provisioning heals it.
	require.NoError(t, err)
	assert.Empty(t, token)
}
