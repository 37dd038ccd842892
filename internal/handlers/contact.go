// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"folio/internal/contact"
	"folio/internal/render"
)

// ContactSubmitter runs the contact pipeline.
type ContactSubmitter interface {
	Submit(ctx context.Context, sub contact.Submission) contact.Result
}

// Contact serves the public contact form.
type Contact struct {
	svc ContactSubmitter
}

// NewContact creates the contact handler.
func NewContact(svc ContactSubmitter) *Contact {
	return &Contact{svc: svc}
}

// Submit serves POST /api/contact. Invalid input answers 400, a storage
// failure 500; a stored message answers 200 whether or not the owner was
// notified, with the outcome telling the two apart.
func (h *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission
	if err := render.Decode(w, r, &sub); err != nil {
		render.JSON(w, http.StatusBadRequest, contact.Result{Outcome: contact.OutcomeInvalid, Message: contact.MsgInvalid})
		return
	}

	res := h.svc.Submit(r.Context(), sub)
	render.JSON(w, contactStatus(res.Outcome), res)
}

func contactStatus(o contact.Outcome) int {
	switch o {
	case contact.OutcomeInvalid:
		return http.StatusBadRequest
	case contact.OutcomeError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
