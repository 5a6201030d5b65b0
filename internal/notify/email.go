package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
)

// emailInterval throttles sends to respect the mail API rate limits.
const emailInterval = 3 * time.Second

// EmailClient sends an email to a single recipient.
type EmailClient interface {
	SendEmail(to, subject, body string) error
}

// GmailClient sends email through the Gmail API using an offline OAuth token.
type GmailClient struct {
	service      *gmail.Service
	from         string
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewGmailClient creates a Gmail email client from the notify configuration.
func NewGmailClient(ctx context.Context, cfg config.Notify) (*GmailClient, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GmailClientID,
		ClientSecret: cfg.GmailClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}

	token := &oauth2.Token{RefreshToken: cfg.GmailRefreshToken}
	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &GmailClient{service: service, from: cfg.EmailFrom}, nil
}

// SendEmail sends an email with the specified subject and body.
// Throttles requests to respect Gmail API rate limits.
func (c *GmailClient) SendEmail(to, subject, body string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if !c.lastSendTime.IsZero() {
		elapsed := time.Since(c.lastSendTime)
		if elapsed < emailInterval {
			time.Sleep(emailInterval - elapsed)
		}
	}

	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", c.from, to, subject, body)
	encodedMessage := base64.URLEncoding.EncodeToString([]byte(message))

	gmailMessage := &gmail.Message{Raw: encodedMessage}

	_, err := c.service.Users.Messages.Send("me", gmailMessage).Do()
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()

	return nil
}
