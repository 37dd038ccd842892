// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"folio/internal/contact"
	"folio/internal/mail"
	"folio/internal/render"
)

// Relay forwards a contact submission to the owner's inbox through the
// email provider. It is stateless per request and never retries.
type Relay struct {
	sender mail.Sender
	from   string
	to     []string
}

// NewRelay creates the relay. A nil sender means the provider key is not
// configured; every request then fails with 500 without calling out.
func NewRelay(sender mail.Sender, from string, to ...string) *Relay {
	return &Relay{sender: sender, from: from, to: to}
}

type relayResponse struct {
	Data *mail.Sent `json:"data"`
}

// SendEmail serves /api/send-email for any method.
func (h *Relay) SendEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.sender == nil {
		render.Error(w, http.StatusInternalServerError, mail.ErrNotConfigured.Error())
		return
	}

	var sub contact.Submission
	if err := render.Decode(w, r, &sub); err != nil {
		render.Error(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	email, err := mail.ContactEmail(h.from, h.to, sub.Name, sub.Email, sub.Message)
	if err != nil {
		slog.Error("relay: build email failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	sent, err := h.sender.Send(r.Context(), email)
	if err != nil {
		slog.Error("relay: provider rejected email", "error", err)
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	render.JSON(w, http.StatusOK, relayResponse{Data: sent})
}
