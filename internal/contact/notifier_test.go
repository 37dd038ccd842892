// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contact

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/mail"
)

func TestRelayClientNotify(t *testing.T) {
	var got Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		io.WriteString(w, `{"data":{"id":"x"}}`)
	}))
	defer srv.Close()

	err := NewRelayClient(srv.URL, srv.Client()).Notify(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestRelayClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"Missing API key"}`)
	}))
	defer srv.Close()

	err := NewRelayClient(srv.URL, nil).Notify(context.Background(), alice)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "Missing API key")
}

type fakeSender struct {
	got *mail.Email
	err error
}

func (f *fakeSender) Send(_ context.Context, e *mail.Email) (*mail.Sent, error) {
	f.got = e
	if f.err != nil {
		return nil, f.err
	}
	return &mail.Sent{ID: "1"}, nil
}

func TestMailNotifier(t *testing.T) {
	s := &fakeSender{}
	n := NewMailNotifier(s, "Site <site@example.com>", "owner@example.com")

	require.NoError(t, n.Notify(context.Background(), alice))
	assert.Equal(t, []string{"owner@example.com"}, s.got.To)
	assert.Equal(t, "New Message from Alice (a@example.com)", s.got.Subject)

	s.err = errors.New("provider down")
	assert.Error(t, n.Notify(context.Background(), alice))
}
