package syncer

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sayitbetter/journalsync/internal/client"
	"github.com/sayitbetter/journalsync/internal/codec"
	"github.com/sayitbetter/journalsync/internal/common"
	"github.com/sayitbetter/journalsync/internal/cryptox"
	"github.com/sayitbetter/journalsync/internal/logging"
	"github.com/sayitbetter/journalsync/internal/models"
)

// Actions reported by Sync.
const (
	ActionUploaded = "uploaded"
	ActionMerged   = "merged"
)

// Session holds the explicit per-connection sync state: the pseudonymous
// identifier, the in-memory passphrase verifier valid for the session
// lifetime, and the in-flight flag. It replaces the module-level singleton
// state of earlier designs so key lifetime and sync progress are visible,
// testable values.
//
// The verifier is a one-way hash used only to confirm the passphrase before
// destructive operations; neither it nor the passphrase is ever persisted.
type Session struct {
	client *client.SyncClient
	logger logging.Logger

	mu       sync.Mutex
	username string
	userID   string
	verifier string
	enabled  bool
	inFlight bool
}

// NewSession returns a disconnected session bound to a sync client.
func NewSession(c *client.SyncClient, logger logging.Logger) *Session {
	return &Session{client: c, logger: logger}
}

// InitParams carries the credentials the user supplies when enabling sync.
type InitParams struct {
	Username          string
	Passphrase        string
	PassphraseConfirm string
}

// Validate enforces the setup policy: a username of at least 3 characters,
// a non-empty passphrase that is not rated weak, and a matching
// confirmation. All checks run before any network or crypto work.
func (p InitParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username,
			validation.Required.Error("username is required"),
			validation.By(func(any) error {
				if len(cryptox.NormalizeUsername(p.Username)) < 3 {
					return fmt.Errorf("username must be at least 3 characters")
				}
				return nil
			}),
		),
		validation.Field(&p.Passphrase,
			validation.Required.Error("passphrase is required"),
			validation.By(func(any) error {
				s := cryptox.EvaluatePassphraseStrength(p.Passphrase)
				if s.Level == cryptox.StrengthNone || s.Level == cryptox.StrengthWeak {
					return fmt.Errorf("passphrase is too weak: %v", s.Feedback)
				}
				return nil
			}),
		),
		validation.Field(&p.PassphraseConfirm,
			validation.By(func(any) error {
				if p.PassphraseConfirm != p.Passphrase {
					return fmt.Errorf("passphrases do not match")
				}
				return nil
			}),
		),
	)
}

// SessionInfo is the non-sensitive summary returned by Initialize.
type SessionInfo struct {
	UserID   string
	Username string
	Enabled  bool
}

// Initialize validates the credentials, derives the pseudonymous user id,
// and caches the in-memory verifier for the session. The passphrase itself
// is not retained.
func (s *Session) Initialize(params InitParams) (*SessionInfo, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = cryptox.NormalizeUsername(params.Username)
	s.userID = cryptox.DeriveUserID(params.Username, params.Passphrase)
	s.verifier = cryptox.MakeVerifier(params.Passphrase)
	s.enabled = true

	return &SessionInfo{UserID: s.userID, Username: s.username, Enabled: true}, nil
}

// VerifyPassphrase checks a passphrase against the session verifier in
// constant time. Returns false when the session is not initialized.
func (s *Session) VerifyPassphrase(passphrase string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.verifier == "" {
		return false
	}
	candidate := cryptox.MakeVerifier(passphrase)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.verifier)) == 1
}

// Disconnect clears all cached session state. Explicit logout: after this
// the session behaves like a fresh NewSession result.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
	s.userID = ""
	s.verifier = ""
	s.enabled = false
}

// Status is the non-sensitive snapshot of the session. UserID is truncated
// for display so a full identifier never ends up in logs or screenshots.
type Status struct {
	Enabled        bool
	SyncInProgress bool
	Username       string
	UserIDPreview  string
}

// Status returns the current session snapshot.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{Enabled: s.enabled, SyncInProgress: s.inFlight, Username: s.username}
	if len(s.userID) > 12 {
		st.UserIDPreview = s.userID[:12] + "..."
	}
	return st
}

// SyncResult describes one completed sync cycle. Entries is the canonical
// merged set the caller must replace its local store with.
type SyncResult struct {
	Entries     []models.Entry
	Action      string
	LocalCount  int
	RemoteCount int
	MergedCount int
	UploadedAt  string
}

// Sync runs one full cycle: download the remote package, merge it with the
// local set, upload the merged result, and return it. The download and
// merge always complete before the upload begins — the two are strictly
// sequential so a stale upload can never overwrite a fresher remote write
// observed mid-cycle.
//
// An absent remote record (first sync) short-circuits to uploading the
// local set as-is. A second Sync while one is in flight fails with
// common.ErrSyncInProgress.
func (s *Session) Sync(ctx context.Context, local []models.Entry, passphrase string) (*SyncResult, error) {
	userID, err := s.beginCycle()
	if err != nil {
		return nil, err
	}
	defer s.endCycle()

	record, err := s.client.Download(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			uploadedAt := ""
			if len(local) > 0 {
				uploadedAt, err = s.upload(ctx, userID, local, passphrase)
				if err != nil {
					return nil, err
				}
			}
			return &SyncResult{
				Entries:     local,
				Action:      ActionUploaded,
				LocalCount:  len(local),
				MergedCount: len(local),
				UploadedAt:  uploadedAt,
			}, nil
		}
		return nil, fmt.Errorf("downloading remote entries: %w", err)
	}

	remote, checksum, err := codec.Unpackage(&record.EncryptedData, passphrase)
	if err != nil {
		return nil, err
	}
	if record.Checksum != "" && checksum != record.Checksum {
		// Non-fatal: GCM already authenticated the data, and the next
		// successful upload rewrites the remote checksum anyway.
		s.logger.Warn(ctx, "remote checksum mismatch, continuing with decrypted data",
			"expected", record.Checksum, "actual", checksum)
	}

	merged := Merge(local, remote)

	uploadedAt, err := s.upload(ctx, userID, merged, passphrase)
	if err != nil {
		return nil, err
	}

	return &SyncResult{
		Entries:     merged,
		Action:      ActionMerged,
		LocalCount:  len(local),
		RemoteCount: len(remote),
		MergedCount: len(merged),
		UploadedAt:  uploadedAt,
	}, nil
}

// UploadEntries encrypts and uploads the given set as the new remote
// record, outside a merge cycle (used for explicit push after local-only
// changes).
func (s *Session) UploadEntries(ctx context.Context, entries []models.Entry, passphrase string) (string, error) {
	userID, err := s.beginCycle()
	if err != nil {
		return "", err
	}
	defer s.endCycle()
	return s.upload(ctx, userID, entries, passphrase)
}

// DeleteRemote wipes the user's remote record. The passphrase must match
// the session verifier first, so a mistyped command cannot destroy data.
func (s *Session) DeleteRemote(ctx context.Context, passphrase string) error {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return common.ErrNotInitialized
	}
	userID := s.userID
	s.mu.Unlock()

	if !s.VerifyPassphrase(passphrase) {
		return common.ErrPassphraseMismatch
	}
	return s.client.Delete(ctx, userID)
}

// HealthCheck probes the sync service.
func (s *Session) HealthCheck(ctx context.Context) bool {
	return s.client.HealthCheck(ctx)
}

func (s *Session) beginCycle() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return "", common.ErrNotInitialized
	}
	if s.inFlight {
		return "", common.ErrSyncInProgress
	}
	s.inFlight = true
	return s.userID, nil
}

func (s *Session) endCycle() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func (s *Session) upload(ctx context.Context, userID string, entries []models.Entry, passphrase string) (string, error) {
	pkg, checksum, err := codec.Package(entries, passphrase)
	if err != nil {
		return "", err
	}

	payload := &models.SyncPayload{
		UserID:        userID,
		EncryptedData: *pkg,
		EntryCount:    len(entries),
		LastModified:  time.Now().UTC(),
		Checksum:      checksum,
		Version:       1,
	}

	uploadedAt, err := s.client.Upload(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("uploading entries: %w", err)
	}
	return uploadedAt, nil
}
