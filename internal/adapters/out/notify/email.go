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

// EmailChannel sends notifications through a transactional email provider's
// HTTP API.
type EmailChannel struct {
	client *http.Client
	url    string
	apiKey string
	sender string
}

// NewEmailChannel creates an email channel. Messages are sent from the given
// sender address.
func NewEmailChannel(url, apiKey, sender string) *EmailChannel {
	return &EmailChannel{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
		apiKey: apiKey,
		sender: sender,
	}
}

// Name identifies the channel in logs.
func (c *EmailChannel) Name() string {
	return "email"
}

type emailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	ToName  string `json:"to_name"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Send delivers the message to the contact's email address. Any non-2xx
// response is a failure.
func (c *EmailChannel) Send(ctx context.Context, contact ports.Contact, subject, body string) error {
	payload, err := json.Marshal(emailMessage{
		From:    c.sender,
		To:      contact.Email,
		ToName:  contact.Name,
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email provider returned %d", resp.StatusCode)
	}

	return nil
}
