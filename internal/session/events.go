// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// eventsChannel is the Valkey pub/sub channel for auth state changes.
const eventsChannel = "auth:events"

// EventType names an auth state change.
type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
)

// Event is broadcast to every open auth event stream when the owner signs
// in or out, so other tabs can drop or restore admin affordances.
type Event struct {
	Type   EventType `json:"type"`
	UserID uuid.UUID `json:"user_id"`
	At     time.Time `json:"at"`
}

// Publish broadcasts ev to all subscribers.
func (s *Store) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("event marshal: %w", err)
	}
	if err := s.client.Publish(ctx, eventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("event publish: %w", err)
	}
	return nil
}

// Subscribe returns a channel of auth events. The channel is closed when
// ctx is done.
func (s *Store) Subscribe(ctx context.Context) (<-chan Event, error) {
	ps := s.client.Subscribe(ctx, eventsChannel)
	// Wait for the subscription to be confirmed so no event is missed.
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("event subscribe: %w", err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					slog.Warn("auth event decode failed", "error", err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
