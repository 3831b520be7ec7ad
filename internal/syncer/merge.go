// Package syncer implements the reconciliation half of cloud sync: the
// last-write-wins merge of local and remote entry sets, the session state
// that replaces ad-hoc global singletons, and the full
// download-merge-upload protocol.
package syncer

import (
	"sort"

	"github.com/sayitbetter/journalsync/internal/models"
)

// Merge unifies a local and a remote entry collection into one canonical
// set using a per-entry last-write-wins rule.
//
// The map is seeded with every remote entry; a local entry then replaces
// the remote copy only when its timestamp is strictly later. Concurrent
// edits to the same id are not merged field by field — the later revision
// wins in full. Tombstones participate in the same rule, so a deletion with
// a newer timestamp propagates over an older live copy instead of the entry
// silently resurrecting.
//
// The result contains every id present in either input exactly once,
// sorted by timestamp descending (ties broken by id for determinism).
func Merge(local, remote []models.Entry) []models.Entry {
	byID := make(map[models.EntryID]models.Entry, len(local)+len(remote))

	for _, e := range remote {
		byID[e.ID] = e
	}
	for _, e := range local {
		existing, ok := byID[e.ID]
		if !ok || e.Timestamp.After(existing.Timestamp) {
			byID[e.ID] = e
		}
	}

	merged := make([]models.Entry, 0, len(byID))
	for _, e := range byID {
		merged = append(merged, e)
	}
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].Timestamp.Equal(merged[j].Timestamp) {
			return merged[i].Timestamp.After(merged[j].Timestamp)
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}
