package entries

import (
	"context"
	"testing"
	"time"

	"github.com/sayitbetter/journalsync/internal/common"
	"github.com/sayitbetter/journalsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := InitDatabase(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db)
}

func entryAt(id string, ts time.Time) models.Entry {
	return models.Entry{
		ID:        models.EntryID(id),
		Timestamp: ts,
		RawInput:  "text for " + id,
		Tone:      models.ToneNeutral,
	}
}

func TestSQLiteRepository_SaveAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	ts := time.Date(2025, 5, 10, 7, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, entryAt("a", ts)))
	require.NoError(t, repo.Save(ctx, entryAt("b", ts.Add(time.Hour))))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, models.EntryID("b"), all[0].ID)

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "text for a", got.RawInput)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrEntryNotFound)
}

func TestSQLiteRepository_OrdersWithinSecond(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	// A whole-second timestamp and one half a second later must order
	// correctly even though they only differ in the fractional part.
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, entryAt("whole", ts)))
	require.NoError(t, repo.Save(ctx, entryAt("frac", ts.Add(500*time.Millisecond))))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, models.EntryID("frac"), all[0].ID)
	assert.Equal(t, models.EntryID("whole"), all[1].ID)
}

func TestSQLiteRepository_SaveIsUpsert(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	ts := time.Date(2025, 5, 10, 7, 0, 0, 0, time.UTC)

	e := entryAt("a", ts)
	require.NoError(t, repo.Save(ctx, e))

	e.Summary = "revised"
	e.Timestamp = ts.Add(time.Minute)
	require.NoError(t, repo.Save(ctx, e))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "revised", all[0].Summary)
}

func TestSQLiteRepository_SoftDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	ts := time.Now().UTC().Add(-time.Hour)

	require.NoError(t, repo.Save(ctx, entryAt("a", ts)))
	require.NoError(t, repo.SoftDelete(ctx, "a"))

	// Gone from the active view...
	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	// ...but still present as a tombstone with a newer timestamp, so the
	// deletion can win conflict resolution on the next sync.
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Deleted)
	assert.True(t, all[0].Timestamp.After(ts))

	assert.ErrorIs(t, repo.SoftDelete(ctx, "missing"), common.ErrEntryNotFound)
}

func TestSQLiteRepository_ReplaceAll(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	ts := time.Date(2025, 5, 10, 7, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, entryAt("old1", ts)))
	require.NoError(t, repo.Save(ctx, entryAt("old2", ts)))

	merged := []models.Entry{
		entryAt("old1", ts.Add(time.Hour)),
		entryAt("new1", ts.Add(2*time.Hour)),
	}
	require.NoError(t, repo.ReplaceAll(ctx, merged))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, models.EntryID("new1"), all[0].ID)
	assert.Equal(t, models.EntryID("old1"), all[1].ID)
}

func TestSQLiteRepository_PurgeTombstones(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	old := entryAt("old-dead", now.Add(-48*time.Hour))
	old.Deleted = true
	fresh := entryAt("fresh-dead", now.Add(-time.Hour))
	fresh.Deleted = true
	live := entryAt("live", now.Add(-72*time.Hour))

	for _, e := range []models.Entry{old, fresh, live} {
		require.NoError(t, repo.Save(ctx, e))
	}

	purged, err := repo.PurgeTombstones(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	// The old live entry must survive a purge regardless of age.
	ids := []models.EntryID{all[0].ID, all[1].ID}
	assert.Contains(t, ids, models.EntryID("live"))
	assert.Contains(t, ids, models.EntryID("fresh-dead"))
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, entryAt("a", time.Now())))
	require.NoError(t, repo.Clear(ctx))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
