package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sayitbetter/journalsync/internal/common"
	"github.com/sayitbetter/journalsync/internal/models"
)

// ShareClient talks to the one-off share endpoint. Like SyncClient it only
// ever carries ciphertext; the ephemeral key stays in the share URL
// fragment on the sender's side.
type ShareClient struct {
	baseURL string
	http    *http.Client
}

// NewShareClient returns a ShareClient for the given API base URL. The
// client owns the endpoint paths itself: shares are created at
// {base}/share and fetched from {base}/share/{id}, so the same base URL
// also works for building user-facing share links.
func NewShareClient(baseURL string, httpClient *http.Client) *ShareClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ShareClient{baseURL: baseURL, http: httpClient}
}

func (c *ShareClient) shareURL() string {
	return c.baseURL + "/share"
}

// CreateShare stores an encrypted envelope and returns the server-issued
// share id with its expiry.
func (c *ShareClient) CreateShare(ctx context.Context, env *models.ShareEnvelope) (*models.ShareLink, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encoding share envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.shareURL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "create share", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var link models.ShareLink
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&link); err != nil {
		return nil, fmt.Errorf("decoding share link: %w", err)
	}
	return &link, nil
}

// GetShare retrieves a shared envelope by id. A missing id yields
// common.ErrNotFound, an expired one common.ErrShareExpired.
func (c *ShareClient) GetShare(ctx context.Context, shareID string) (*models.ShareEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.shareURL()+"/"+shareID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "get share", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, common.ErrNotFound
	case http.StatusGone:
		return nil, common.ErrShareExpired
	default:
		return nil, apiError(resp)
	}

	var env models.ShareEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding share envelope: %w", err)
	}
	return &env, nil
}
