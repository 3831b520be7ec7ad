package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/sayitbetter/journalsync/internal/common"
	"github.com/sayitbetter/journalsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is a minimal in-memory entries.Repository for service tests.
type memRepo struct {
	entries map[models.EntryID]models.Entry
}

func newMemRepo(seed ...models.Entry) *memRepo {
	r := &memRepo{entries: map[models.EntryID]models.Entry{}}
	for _, e := range seed {
		r.entries[e.ID] = e
	}
	return r
}

func (r *memRepo) GetAll(context.Context) ([]models.Entry, error) {
	var out []models.Entry
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out, nil
}

func (r *memRepo) GetActive(ctx context.Context) ([]models.Entry, error) {
	var out []models.Entry
	for _, e := range r.entries {
		if !e.Deleted {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id models.EntryID) (*models.Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, common.ErrEntryNotFound
	}
	return &e, nil
}

func (r *memRepo) Save(_ context.Context, e models.Entry) error {
	r.entries[e.ID] = e
	return nil
}

func (r *memRepo) SoftDelete(_ context.Context, id models.EntryID) error {
	e, ok := r.entries[id]
	if !ok {
		return common.ErrEntryNotFound
	}
	r.entries[id] = e.Tombstone()
	return nil
}

func (r *memRepo) ReplaceAll(_ context.Context, entries []models.Entry) error {
	r.entries = map[models.EntryID]models.Entry{}
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return nil
}

func (r *memRepo) PurgeTombstones(_ context.Context, before time.Time) (int64, error) {
	var purged int64
	for id, e := range r.entries {
		if e.Deleted && e.Timestamp.Before(before) {
			delete(r.entries, id)
			purged++
		}
	}
	return purged, nil
}

func (r *memRepo) Clear(context.Context) error {
	r.entries = map[models.EntryID]models.Entry{}
	return nil
}

func TestService_SyncStoreReplacesLocal(t *testing.T) {
	session, _ := newTestSession(t)
	ctx := context.Background()

	// Another device already uploaded one entry.
	_, err := session.Sync(ctx, []models.Entry{at("remote-1", base.Add(time.Hour))}, testPassphrase)
	require.NoError(t, err)

	repo := newMemRepo(at("local-1", base))
	svc := NewService(session, repo, quietLogger(), 0)

	result, err := svc.SyncStore(ctx, testPassphrase)
	require.NoError(t, err)
	assert.Equal(t, ActionMerged, result.Action)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_SyncStorePurgesOldTombstones(t *testing.T) {
	session, _ := newTestSession(t)
	ctx := context.Background()

	oldDead := at("old-dead", time.Now().UTC().Add(-60*24*time.Hour))
	oldDead.Deleted = true
	freshDead := at("fresh-dead", time.Now().UTC().Add(-time.Hour))
	freshDead.Deleted = true

	repo := newMemRepo(oldDead, freshDead, at("live", base))
	svc := NewService(session, repo, quietLogger(), DefaultTombstoneRetention)

	_, err := svc.SyncStore(ctx, testPassphrase)
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	ids := map[models.EntryID]bool{}
	for _, e := range all {
		ids[e.ID] = true
	}
	assert.False(t, ids["old-dead"], "tombstone past retention must be purged after confirmed sync")
	assert.True(t, ids["fresh-dead"], "recent tombstone must be retained for other devices")
	assert.True(t, ids["live"])
}

func TestService_ImportEntriesMergesWithLocal(t *testing.T) {
	session, _ := newTestSession(t)
	ctx := context.Background()

	newer := at("1", base.Add(time.Hour))
	newer.Summary = "local is newer"
	repo := newMemRepo(newer)
	svc := NewService(session, repo, quietLogger(), 0)

	older := at("1", base)
	older.Summary = "backup is older"
	count, err := svc.ImportEntries(ctx, []models.Entry{older, at("2", base)})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "local is newer", got.Summary)
}
