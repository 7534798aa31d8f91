package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sod/avl/internal/database"
	"github.com/go-sod/avl/internal/report/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()
	sDB, err := database.NewFromEnv(ctx, &database.Config{
		FileName:    filepath.Join(t.TempDir(), "runs.db"),
		OpenTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sDB.Close(ctx)
	})
	return New(sDB)
}

func TestDB_StoreFind(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	older := model.NewRun(model.KindProfile, map[string]string{"trials": "3"})
	older.StartedAt = time.Now().Add(-time.Hour)
	older.Trials = []model.Trial{{Index: 0, Keys: 10, Distinct: 9, Height: 4, Insert: time.Microsecond}}
	newer := model.NewRun(model.KindFootprint, nil)
	newer.Footprint = &model.Footprint{Keys: 100, Nodes: 100, Height: 7}

	require.NoError(t, db.Store(ctx, older))
	require.NoError(t, db.Store(ctx, newer))

	runs, err := db.FindAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)
	assert.Equal(t, older.ID, runs[1].ID)
	assert.Equal(t, older.Trials, runs[1].Trials)

	profiles, err := db.FindAll(ctx, func(run model.Run) bool { return run.Kind == model.KindProfile })
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "3", profiles[0].Params["trials"])

	got, err := db.FindByID(ctx, newer.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Footprint)
	assert.Equal(t, 7, got.Footprint.Height)

	kinds, err := db.Kinds()
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Kind{model.KindProfile, model.KindFootprint}, kinds)

	n, err := db.CountByKind(model.KindProfile)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDB_Delete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	run := model.NewRun(model.KindStress, nil)
	require.NoError(t, db.Store(ctx, run))
	require.NoError(t, db.Delete(ctx, run))

	_, err := db.FindByID(ctx, run.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := db.CountByKind(model.KindStress)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDB_Empty(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	runs, err := db.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = db.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := db.CountByKind(model.KindProfile)
	require.NoError(t, err)
	assert.Zero(t, n)
}
