// Package client talks to the remote zero-knowledge stores over HTTP. It is
// deliberately dumb about plaintext: nothing here encrypts, decrypts, or
// sees key material — only encrypted packages, pseudonymous identifiers and
// non-sensitive counts and timestamps cross this boundary.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sayitbetter/journalsync/internal/common"
	"github.com/sayitbetter/journalsync/internal/models"
)

// maxResponseSize bounds how much of a response body is read, mirroring the
// service's own 10MB payload cap.
const maxResponseSize = 10 << 20

// SyncClient performs the network half of the sync protocol: whole-blob
// upload, download and delete of a user's encrypted record, plus a health
// probe.
type SyncClient struct {
	baseURL string
	http    *http.Client
}

// NewSyncClient returns a SyncClient for the given sync endpoint base URL.
// If httpClient is nil, http.DefaultClient is used.
func NewSyncClient(baseURL string, httpClient *http.Client) *SyncClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SyncClient{baseURL: baseURL, http: httpClient}
}

// Upload replaces the remote record for payload.UserID with the given
// encrypted payload. The operation is idempotent: re-sending the same
// payload leaves the same record. Returns the server's storage timestamp.
func (c *SyncClient) Upload(ctx context.Context, payload *models.SyncPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding sync payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Op: "upload", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	var ack struct {
		Timestamp string `json:"timestamp"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&ack); err != nil {
		return "", fmt.Errorf("decoding upload ack: %w", err)
	}
	return ack.Timestamp, nil
}

// Download fetches the encrypted record for userID. A missing record is a
// legitimate first-sync state, reported as common.ErrNotFound rather than a
// communication failure.
func (c *SyncClient) Download(ctx context.Context, userID string) (*models.RemoteRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.recordURL(userID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "download", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, common.ErrNotFound
	default:
		return nil, apiError(resp)
	}

	var record models.RemoteRecord
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding remote record: %w", err)
	}
	return &record, nil
}

// Delete removes the remote record for userID.
func (c *SyncClient) Delete(ctx context.Context, userID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.recordURL(userID), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "delete", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// HealthCheck reports whether the sync service is reachable.
func (c *SyncClient) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *SyncClient) recordURL(userID string) string {
	return c.baseURL + "?userId=" + url.QueryEscape(userID)
}

// apiError drains an error response into an *APIError, tolerating bodies
// that are not the expected {"error": ...} JSON.
func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body)
	return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
}
