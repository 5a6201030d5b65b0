package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

const defaultTimeout = 30 * time.Second

// ErrClientNotInitialized is returned when the client is used without being
// constructed through New.
var ErrClientNotInitialized = errors.New("identity client is not initialized")

// Client talks to the claims admin API over HTTP.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// New creates a claims admin API client from the identity configuration.
func New(cfg config.Identity) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		endpoint: cfg.AdminEndpoint,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type claimMutation struct {
	UID  string      `json:"uid"`
	Role models.Role `json:"role,omitempty"`
	Info *uint       `json:"info,omitempty"`
}

// AddRoleToUser adds the role claim to the account.
func (c *Client) AddRoleToUser(ctx context.Context, uid string, role models.Role, info *uint) error {
	return c.post(ctx, "/claims/add", claimMutation{UID: uid, Role: role, Info: info})
}

// RemoveRoleFromUser removes the role claim from the account.
func (c *Client) RemoveRoleFromUser(ctx context.Context, uid string, role models.Role, info *uint) error {
	return c.post(ctx, "/claims/remove", claimMutation{UID: uid, Role: role, Info: info})
}

// DeactivateUser disables the account at the provider.
func (c *Client) DeactivateUser(ctx context.Context, uid string) error {
	return c.post(ctx, "/accounts/deactivate", claimMutation{UID: uid})
}

// ActivateUser re-enables the account at the provider.
func (c *Client) ActivateUser(ctx context.Context, uid string) error {
	return c.post(ctx, "/accounts/activate", claimMutation{UID: uid})
}

func (c *Client) post(ctx context.Context, path string, body claimMutation) error {
	if c.http == nil {
		return ErrClientNotInitialized
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode claim mutation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create claim request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("claim request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close identity response body")
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("claim request %s returned status %d", path, resp.StatusCode)
	}

	return nil
}
