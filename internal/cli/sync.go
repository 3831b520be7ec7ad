package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/sayitbetter/journalsync/internal/client"
	"github.com/sayitbetter/journalsync/internal/common"
	"github.com/sayitbetter/journalsync/internal/syncer"
)

const syncMaxRetries = 3

// Sync runs one full sync cycle against the backend, retrying transient
// failures (network errors and 5xx responses) with exponential backoff.
// Crypto failures and client errors are never retried.
func (a *App) Sync(ctx context.Context) error {
	if !a.isConnected() {
		return common.ErrNotInitialized
	}

	var result *syncer.SyncResult

	backoff := retry.WithMaxRetries(syncMaxRetries, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		result, err = a.service.SyncStore(ctx, string(a.passphrase))
		if err != nil && isTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return err
	}

	switch result.Action {
	case syncer.ActionUploaded:
		fmt.Printf("Uploaded %d entries (first sync for this identity)\n", result.MergedCount)
	default:
		fmt.Printf("Merged %d local + %d remote -> %d entries\n",
			result.LocalCount, result.RemoteCount, result.MergedCount)
	}
	return nil
}

// isTransient reports whether an error is worth retrying: transport-level
// failures and server-side (5xx) responses qualify.
func isTransient(err error) bool {
	var transportErr *client.TransportError
	if errors.As(err, &transportErr) {
		return true
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retriable()
	}
	return false
}
