package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pharmacy/internal/core/ports"
)

// WebhookChannel posts notifications as JSON to a configured endpoint.
// Downstream systems such as the pharmacy dashboard consume the feed.
type WebhookChannel struct {
	client    *http.Client
	url       string
	authToken string
}

// NewWebhookChannel creates a webhook channel for the given endpoint.
func NewWebhookChannel(url, authToken string) *WebhookChannel {
	return &WebhookChannel{
		client:    &http.Client{Timeout: 10 * time.Second},
		url:       url,
		authToken: authToken,
	}
}

// Name identifies the channel in logs.
func (c *WebhookChannel) Name() string {
	return "webhook"
}

type webhookMessage struct {
	Recipient string  `json:"recipient"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Subject   string  `json:"subject"`
	Body      string  `json:"body"`
	SentAt    string  `json:"sent_at"`
}

// Send posts the message to the endpoint. Any non-2xx response is a failure.
func (c *WebhookChannel) Send(ctx context.Context, contact ports.Contact, subject, body string) error {
	payload, err := json.Marshal(webhookMessage{
		Recipient: contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Subject:   subject,
		Body:      body,
		SentAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook endpoint returned %d", resp.StatusCode)
	}

	return nil
}
