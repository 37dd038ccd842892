// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mail sends transactional email through Resend and builds the
// owner notification for contact form submissions.
package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"folio/internal/markdown"
)

// ErrNotConfigured is returned when no provider API key is set.
var ErrNotConfigured = errors.New("mail: RESEND_API_KEY is not configured")

// Email is a provider-neutral outgoing message.
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sent is the provider's acknowledgement of an accepted email.
type Sent struct {
	ID string `json:"id"`
}

// Sender delivers an email.
type Sender interface {
	Send(ctx context.Context, e *Email) (*Sent, error)
}

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a sender for apiKey. baseURL overrides the API
// endpoint and is normally empty. An empty apiKey yields ErrNotConfigured.
func NewResendSender(apiKey, baseURL string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client := resend.NewClient(apiKey)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("mail: parse base url: %w", err)
		}
		client.BaseURL = u
	}
	return &ResendSender{client: client}, nil
}

// Send delivers e. Provider errors are returned with the provider's message.
func (s *ResendSender) Send(ctx context.Context, e *Email) (*Sent, error) {
	resp, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    e.From,
		To:      e.To,
		Subject: e.Subject,
		Html:    e.HTML,
	})
	if err != nil {
		return nil, err
	}
	return &Sent{ID: resp.Id}, nil
}

// ContactEmail builds the owner notification for a contact form message.
// Name and address are escaped; the message body is rendered as Markdown
// with raw HTML disabled.
func ContactEmail(from string, to []string, name, email, message string) (*Email, error) {
	body, err := markdown.ToHTML(message)
	if err != nil {
		return nil, fmt.Errorf("mail: render message: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", html.EscapeString(name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", html.EscapeString(email))
	b.WriteString("<p><strong>Message:</strong></p>\n")
	b.WriteString(`<blockquote style="border-left: 4px solid #ccc; padding-left: 10px; color: #555;">` + "\n")
	b.WriteString(body)
	b.WriteString("</blockquote>\n")

	return &Email{
		From:    from,
		To:      to,
		Subject: fmt.Sprintf("New Message from %s (%s)", oneLine(name), oneLine(email)),
		HTML:    b.String(),
	}, nil
}

// oneLine keeps header values on a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
