// Package membership talks to the association's external membership
// registry and reconciles member accounts against it.
package membership

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gewis/sudosos-syncd/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the registry (1MB)
const maxResponseSize = 1 << 20

// Sentinel errors for registry conditions
var (
	ErrMemberNotFound = errors.New("membership: member not found")
	ErrUnhealthy      = errors.New("membership: registry reports itself unhealthy")
	ErrSyncPaused     = errors.New("membership: registry has synchronization paused")
)

// Registry is the conversation the provider needs with the external
// membership API
type Registry interface {
	// Ping verifies the registry is healthy and willing to serve a batch
	Ping(ctx context.Context) error

	// GetMember fetches one membership record; ErrMemberNotFound when the
	// number is unknown
	GetMember(ctx context.Context, memberNumber uint32) (*Member, error)
}

// Client implements Registry over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a registry client from configuration
func NewClient(cfg *config.MembershipConfig) (*Client, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("membership: api url is required")
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}, nil
}

// Ping verifies the registry's health endpoint
func (c *Client) Ping(ctx context.Context) error {
	var health healthResponse
	if err := c.get(ctx, "/health", &health); err != nil {
		return err
	}
	if !health.Healthy {
		return ErrUnhealthy
	}
	if health.SyncPaused {
		return ErrSyncPaused
	}
	return nil
}

// GetMember fetches one membership record by number
func (c *Client) GetMember(ctx context.Context, memberNumber uint32) (*Member, error) {
	var member Member
	if err := c.get(ctx, fmt.Sprintf("/members/%d", memberNumber), &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// get performs an authenticated GET and decodes the JSON response
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("membership: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("membership: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrMemberNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("membership: registry returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("membership: failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("membership: failed to decode response: %w", err)
	}
	return nil
}
