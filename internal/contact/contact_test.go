// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contact

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"folio/internal/models"
)

type fakeStore struct {
	mu    sync.Mutex
	err   error
	saved []models.Message
}

func (f *fakeStore) Create(_ context.Context, name, email, message string) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	m := models.Message{ID: uuid.New(), Name: name, Email: email, Message: message, CreatedAt: time.Now()}
	f.saved = append(f.saved, m)
	return &m, nil
}

type notifierFunc func(ctx context.Context, s Submission) error

func (f notifierFunc) Notify(ctx context.Context, s Submission) error { return f(ctx, s) }

var alice = Submission{Name: "Alice", Email: "a@example.com", Message: "hi"}

func TestSubmitSuccess(t *testing.T) {
	st := &fakeStore{}
	var got Submission
	svc := NewService(st, notifierFunc(func(_ context.Context, s Submission) error {
		got = s
		return nil
	}), time.Second)

	res := svc.Submit(context.Background(), alice)

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, MsgSuccess, res.Message)
	assert.Len(t, st.saved, 1)
	assert.Equal(t, alice, got)
}

func TestSubmitMissingFieldsMakesNoCalls(t *testing.T) {
	for name, sub := range map[string]Submission{
		"no name":          {Email: "a@example.com", Message: "hi"},
		"no email":         {Name: "Alice", Message: "hi"},
		"no message":       {Name: "Alice", Email: "a@example.com"},
		"whitespace only":  {Name: "  ", Email: "a@example.com", Message: "hi"},
		"everything empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			st := &fakeStore{}
			called := false
			svc := NewService(st, notifierFunc(func(context.Context, Submission) error {
				called = true
				return nil
			}), time.Second)

			res := svc.Submit(context.Background(), sub)

			assert.Equal(t, OutcomeInvalid, res.Outcome)
			assert.Empty(t, st.saved)
			assert.False(t, called)
		})
	}
}

func TestSubmitStoreFailureIsHardError(t *testing.T) {
	st := &fakeStore{err: errors.New("db down")}
	called := false
	svc := NewService(st, notifierFunc(func(context.Context, Submission) error {
		called = true
		return nil
	}), time.Second)

	res := svc.Submit(context.Background(), alice)

	assert.Equal(t, OutcomeError, res.Outcome)
	assert.Equal(t, MsgError, res.Message)
	assert.False(t, called, "notification must not run when the message was not stored")
}

func TestSubmitRelayErrorIsWarning(t *testing.T) {
	st := &fakeStore{}
	svc := NewService(st, notifierFunc(func(context.Context, Submission) error {
		return errors.New("relay: status 500")
	}), time.Second)

	res := svc.Submit(context.Background(), alice)

	assert.Equal(t, OutcomeWarning, res.Outcome)
	assert.Len(t, st.saved, 1, "stored message is not rolled back")
}

func TestSubmitSlowRelayIsWarning(t *testing.T) {
	st := &fakeStore{}
	release := make(chan struct{})
	defer close(release)

	svc := NewService(st, notifierFunc(func(ctx context.Context, _ Submission) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}), 20*time.Millisecond)

	start := time.Now()
	res := svc.Submit(context.Background(), alice)

	assert.Equal(t, OutcomeWarning, res.Outcome)
	assert.Equal(t, MsgWarning, res.Message)
	assert.NotNil(t, res.Saved)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSubmitWithoutNotifierIsWarning(t *testing.T) {
	svc := NewService(&fakeStore{}, nil, 0)
	res := svc.Submit(context.Background(), alice)
	assert.Equal(t, OutcomeWarning, res.Outcome)
}

func TestNewServiceDefaultTimeout(t *testing.T) {
	svc := NewService(&fakeStore{}, nil, 0)
	assert.Equal(t, DefaultNotifyTimeout, svc.timeout)
	assert.Equal(t, 5*time.Second, DefaultNotifyTimeout)
}
