package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
)

const defaultPushTimeout = 10 * time.Second

// ErrTokenNotRegistered is returned when the push provider reports the
// registration token as no longer valid. The dispatcher reacts by deleting
// the token and continuing with the remaining tokens.
var ErrTokenNotRegistered = errors.New("registration token not registered")

// PushClient sends a notification to a single device token.
type PushClient interface {
	SendToToken(ctx context.Context, token string, n *Notification) error
}

// FCMClient sends push messages through the provider's HTTP send endpoint.
type FCMClient struct {
	endpoint  string
	serverKey string
	http      *http.Client
}

// NewFCMClient creates a push client from the notify configuration.
func NewFCMClient(cfg config.Notify) *FCMClient {
	timeout := cfg.PushTimeout
	if timeout == 0 {
		timeout = defaultPushTimeout
	}

	return &FCMClient{
		endpoint:  cfg.PushEndpoint,
		serverKey: cfg.PushServerKey,
		http:      &http.Client{Timeout: timeout},
	}
}

type fcmMessage struct {
	To           string            `json:"to"`
	Data         map[string]string `json:"data,omitempty"`
	Notification *fcmNotification  `json:"notification,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmResponse struct {
	Failure int `json:"failure"`
	Results []struct {
		Error string `json:"error"`
	} `json:"results"`
}

// SendToToken sends the notification to one device token.
func (c *FCMClient) SendToToken(ctx context.Context, token string, n *Notification) error {
	msg := fcmMessage{To: token, Data: n.Data}
	if n.Push != nil {
		msg.Notification = &fcmNotification{Title: n.Push.Title, Body: n.Push.Body}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}

	var result fcmResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode push response: %w", err)
	}

	if result.Failure > 0 {
		for _, r := range result.Results {
			if r.Error == "NotRegistered" || r.Error == "InvalidRegistration" {
				return ErrTokenNotRegistered
			}
		}

		return fmt.Errorf("push delivery failed: %s", firstError(result))
	}

	return nil
}

func firstError(r fcmResponse) string {
	for _, res := range r.Results {
		if res.Error != "" {
			return res.Error
		}
	}

	return "unknown error"
}
