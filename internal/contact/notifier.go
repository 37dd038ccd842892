// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"folio/internal/mail"
)

var (
	errNoNotifier = errors.New("no notifier configured")
	errTimeout    = errors.New("notification timed out")
)

// RelayClient notifies the owner by POSTing the submission to an email
// relay endpoint such as /api/send-email.
type RelayClient struct {
	url    string
	client *http.Client
}

// NewRelayClient creates a RelayClient for url. A nil client uses
// http.DefaultClient.
func NewRelayClient(url string, client *http.Client) *RelayClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &RelayClient{url: url, client: client}
}

// Notify sends one request; any non-2xx status is an error.
func (c *RelayClient) Notify(ctx context.Context, s Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("relay: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("relay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error any `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &payload) == nil && payload.Error != nil {
			return fmt.Errorf("relay: status %d: %v", resp.StatusCode, payload.Error)
		}
		return fmt.Errorf("relay: status %d", resp.StatusCode)
	}
	return nil
}

// MailNotifier notifies the owner by calling the email provider directly.
type MailNotifier struct {
	sender mail.Sender
	from   string
	to     []string
}

// NewMailNotifier creates a MailNotifier sending from one address to the
// given recipients.
func NewMailNotifier(sender mail.Sender, from string, to ...string) *MailNotifier {
	return &MailNotifier{sender: sender, from: from, to: to}
}

// Notify builds the contact email and sends it.
func (n *MailNotifier) Notify(ctx context.Context, s Submission) error {
	e, err := mail.ContactEmail(n.from, n.to, s.Name, s.Email, s.Message)
	if err != nil {
		return err
	}
	_, err = n.sender.Send(ctx, e)
	return err
}
