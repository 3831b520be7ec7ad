package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/sayitbetter/journalsync/internal/logging"
	"github.com/sayitbetter/journalsync/internal/models"
	"github.com/sayitbetter/journalsync/internal/repositories/entries"
)

// DefaultTombstoneRetention is how long tombstones are kept after a
// confirmed sync before being hard-purged locally. Long enough for every
// device syncing occasionally to observe the deletion.
const DefaultTombstoneRetention = 30 * 24 * time.Hour

// Service glues the sync session to the local store: it feeds the full
// local collection (tombstones included) into a sync cycle and replaces
// the store wholesale with the merged result.
type Service struct {
	session   *Session
	repo      entries.Repository
	logger    logging.Logger
	retention time.Duration
}

// NewService builds a sync service. A non-positive retention falls back to
// DefaultTombstoneRetention.
func NewService(session *Session, repo entries.Repository, logger logging.Logger, retention time.Duration) *Service {
	if retention <= 0 {
		retention = DefaultTombstoneRetention
	}
	return &Service{session: session, repo: repo, logger: logger, retention: retention}
}

// Session exposes the underlying session for status and lifecycle calls.
func (s *Service) Session() *Session { return s.session }

// SyncStore runs one full sync cycle against the local store:
// read everything locally, reconcile with the remote record, replace the
// local collection with the canonical merged set, then purge tombstones
// old enough that the confirmed sync has propagated them.
func (s *Service) SyncStore(ctx context.Context, passphrase string) (*SyncResult, error) {
	local, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading local entries: %w", err)
	}

	result, err := s.session.Sync(ctx, local, passphrase)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceAll(ctx, result.Entries); err != nil {
		return nil, fmt.Errorf("replacing local entries with merge result: %w", err)
	}

	// The upload above confirmed the tombstones reached the remote copy;
	// only ones past the retention window are safe to drop.
	purged, err := s.repo.PurgeTombstones(ctx, time.Now().Add(-s.retention))
	if err != nil {
		// Purge failure leaves harmless extra tombstones; the sync itself
		// succeeded, so don't fail the cycle over housekeeping.
		s.logger.Warn(ctx, "tombstone purge failed", "error", err)
	} else if purged > 0 {
		s.logger.Info(ctx, "purged synced tombstones", "count", purged)
	}

	return result, nil
}

// ImportEntries merges restored backup entries into the local store without
// touching the network. Existing local revisions win over older backup
// copies under the same last-write-wins rule as cloud sync.
func (s *Service) ImportEntries(ctx context.Context, restored []models.Entry) (int, error) {
	local, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading local entries: %w", err)
	}
	merged := Merge(local, restored)
	if err := s.repo.ReplaceAll(ctx, merged); err != nil {
		return 0, fmt.Errorf("storing imported entries: %w", err)
	}
	return len(merged), nil
}
