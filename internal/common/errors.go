// Package common contains shared constants, sentinel errors and small
// utility helpers used across the journal sync client. Callers should use
// errors.Is to match the sentinel values.
package common

import "errors"

var (
	// Remote-store states.
	ErrNotFound     = errors.New("no remote data for this user")
	ErrShareExpired = errors.New("share link expired")

	// Local-store states.
	ErrEntryNotFound = errors.New("entry not found")

	// Session lifecycle errors.
	ErrNotInitialized = errors.New("cloud sync not initialized")
	ErrSyncInProgress = errors.New("sync already in progress")

	// Passphrase verification against the cached session verifier.
	ErrPassphraseMismatch = errors.New("passphrase does not match")
)
