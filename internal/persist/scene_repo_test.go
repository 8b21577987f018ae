package persist_test

import (
	"context"
	"os"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sceneworks/sceneedit/internal/config"
	"github.com/sceneworks/sceneedit/internal/persist"
)

// openTestDB connects to the database named by SCENEEDIT_TEST_DSN and
// skips the test when it is unset.
func openTestDB(t *testing.T) *persist.DB {
	t.Helper()
	dsn := os.Getenv("SCENEEDIT_TEST_DSN")
	if dsn == "" {
		t.Skip("SCENEEDIT_TEST_DSN not set")
	}
	ctx := context.Background()
	cfg := config.Default().Database
	cfg.DSN = dsn
	db, err := persist.Open(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(db.Close)
	_, err = db.Migrate(ctx)
	require.NoError(t, err)
	return db
}

func TestSceneRepoRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := persist.NewSceneRepo(db)
	ctx := context.Background()
	name := "repo-test-" + t.Name()
	t.Cleanup(func() { _ = repo.Delete(ctx, name) })

	snap := snapshot(name)
	snap.Entities[0].Transform.Position = mgl32.Vec3{1, 2, 3}

	saved, err := repo.Save(ctx, snap)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = repo.Save(ctx, snap)
	require.NoError(t, err)
	assert.False(t, saved, "unchanged scene is skipped")

	got, err := repo.Load(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	snap.Entities = snap.Entities[:1]
	saved, err = repo.Save(ctx, snap)
	require.NoError(t, err)
	assert.True(t, saved)
	got, err = repo.Load(ctx, name)
	require.NoError(t, err)
	assert.Len(t, got.Entities, 1)

	infos, err := repo.List(ctx)
	require.NoError(t, err)
	var found bool
	for _, in := range infos {
		if in.Name == name {
			found = true
			assert.Equal(t, 1, in.Entities)
			assert.False(t, in.UpdatedAt.IsZero())
		}
	}
	assert.True(t, found)

	require.NoError(t, repo.Delete(ctx, name))
	_, err = repo.Load(ctx, name)
	assert.ErrorIs(t, err, persist.ErrSceneNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, name), persist.ErrSceneNotFound)
}
