// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contact runs the contact form pipeline: validate, persist the
// message, then try to notify the owner within a fixed time budget.
package contact

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"folio/internal/models"
)

// DefaultNotifyTimeout bounds how long a visitor waits for the owner
// notification before the submission is reported as saved-only.
const DefaultNotifyTimeout = 5 * time.Second

// Outcome classifies a submission for the visitor.
type Outcome string

const (
	OutcomeInvalid Outcome = "invalid" // missing fields, nothing stored
	OutcomeError   Outcome = "error"   // message could not be stored
	OutcomeWarning Outcome = "warning" // stored, notification skipped
	OutcomeSuccess Outcome = "success" // stored and owner notified
)

// Visitor-facing texts for each outcome.
const (
	MsgInvalid = "Please fill in your name, email and message."
	MsgError   = "Failed to send message. Please try again later."
	MsgWarning = "Message saved, but the email notification was skipped."
	MsgSuccess = "Message sent! I'll get back to you soon."
)

// Submission is the contact form payload.
type Submission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Result reports what happened to a submission.
type Result struct {
	Outcome Outcome         `json:"outcome"`
	Message string          `json:"message"`
	Saved   *models.Message `json:"saved,omitempty"`
}

// MessageStore persists submissions.
type MessageStore interface {
	Create(ctx context.Context, name, email, message string) (*models.Message, error)
}

// Notifier tells the owner about a new message.
type Notifier interface {
	Notify(ctx context.Context, s Submission) error
}

// Service runs submissions through the pipeline.
type Service struct {
	store    MessageStore
	notifier Notifier
	timeout  time.Duration
	validate *validator.Validate
}

// NewService creates a Service. notifier may be nil, in which case every
// stored message ends with OutcomeWarning. A zero timeout uses
// DefaultNotifyTimeout.
func NewService(store MessageStore, notifier Notifier, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	return &Service{
		store:    store,
		notifier: notifier,
		timeout:  timeout,
		validate: validator.New(),
	}
}

// Submit validates, stores and notifies. It never returns an error; the
// outcome carries the failure class instead.
func (s *Service) Submit(ctx context.Context, sub Submission) Result {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Message = strings.TrimSpace(sub.Message)

	if err := s.validate.Struct(sub); err != nil {
		return Result{Outcome: OutcomeInvalid, Message: MsgInvalid}
	}

	saved, err := s.store.Create(ctx, sub.Name, sub.Email, sub.Message)
	if err != nil {
		slog.Error("contact: store message failed", "error", err)
		return Result{Outcome: OutcomeError, Message: MsgError}
	}

	if err := s.notify(ctx, sub); err != nil {
		slog.Warn("contact: owner notification skipped", "message_id", saved.ID, "error", err)
		return Result{Outcome: OutcomeWarning, Message: MsgWarning, Saved: saved}
	}
	return Result{Outcome: OutcomeSuccess, Message: MsgSuccess, Saved: saved}
}

// notify races the notifier against the timeout. The notifier's context is
// cancelled once the race is decided.
func (s *Service) notify(ctx context.Context, sub Submission) error {
	if s.notifier == nil {
		return errNoNotifier
	}

	nctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.notifier.Notify(nctx, sub)
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return errTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
