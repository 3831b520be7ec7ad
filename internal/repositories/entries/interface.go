// Package entries provides the local journal entry store: the interface the
// sync core consumes and its SQLite implementation.
package entries

import (
	"context"
	"time"

	"github.com/sayitbetter/journalsync/internal/models"
)

// Repository is the local entry collection with a timestamp index.
//
// GetAll returns tombstoned entries too — sync needs them so deletions
// propagate; GetActive filters them out for display. Soft delete is the
// only user-facing deletion: tombstones are hard-purged solely through
// PurgeTombstones, which callers invoke only after a confirmed sync.
type Repository interface {
	// GetAll lists every entry, tombstones included, newest first.
	GetAll(ctx context.Context) ([]models.Entry, error)
	// GetActive lists non-deleted entries, newest first.
	GetActive(ctx context.Context) ([]models.Entry, error)
	// GetByID fetches one entry. Missing ids yield common.ErrEntryNotFound.
	GetByID(ctx context.Context, id models.EntryID) (*models.Entry, error)
	// Save upserts an entry by id.
	Save(ctx context.Context, e models.Entry) error
	// SoftDelete replaces the entry with a freshly-timestamped tombstone.
	SoftDelete(ctx context.Context, id models.EntryID) error
	// ReplaceAll atomically swaps the whole collection for the given set.
	// This is how a merge result lands: wholesale, never patched.
	ReplaceAll(ctx context.Context, entries []models.Entry) error
	// PurgeTombstones hard-deletes tombstones older than the cutoff and
	// reports how many were removed.
	PurgeTombstones(ctx context.Context, before time.Time) (int64, error)
	// Clear wipes the collection entirely.
	Clear(ctx context.Context) error
}
