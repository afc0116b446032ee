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

// SMSChannel sends notifications through an SMS provider's HTTP API.
// Contacts without a phone number are skipped without error.
type SMSChannel struct {
	client *http.Client
	url    string
	apiKey string
	sender string
}

// NewSMSChannel creates an SMS channel. Messages carry the given sender ID.
func NewSMSChannel(url, apiKey, sender string) *SMSChannel {
	return &SMSChannel{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
		apiKey: apiKey,
		sender: sender,
	}
}

// Name identifies the channel in logs.
func (c *SMSChannel) Name() string {
	return "sms"
}

type smsMessage struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// Send delivers the message to the contact's phone number. Contacts without
// one are skipped; the subject is dropped because SMS carries body text only.
func (c *SMSChannel) Send(ctx context.Context, contact ports.Contact, _ string, body string) error {
	if contact.Phone == nil {
		return nil
	}

	payload, err := json.Marshal(smsMessage{
		From: c.sender,
		To:   *contact.Phone,
		Text: body,
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
		return fmt.Errorf("sms provider returned %d", resp.StatusCode)
	}

	return nil
}
