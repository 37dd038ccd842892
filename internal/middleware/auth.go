// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"folio/internal/render"
	"folio/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// viewerKey is the context key for the request's Viewer.
const viewerKey contextKey = "viewer"

// Viewer describes who is making the request. The zero value is an
// anonymous visitor.
type Viewer struct {
	Session *session.Data
}

// SignedIn reports whether the request carries a session, whether or not
// the second factor is complete.
func (v Viewer) SignedIn() bool {
	return v.Session != nil
}

// IsAdmin reports whether the viewer is the owner with a finished sign-in.
// A session still waiting for its TOTP code is not an admin.
func (v Viewer) IsAdmin() bool {
	return v.Session != nil && v.Session.TwoFADone
}

// SessionGetter loads the session attached to a request.
type SessionGetter interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
}

// LoadSession resolves the session cookie and stores a Viewer in the
// request context. It never rejects a request; a lookup failure is logged
// and the request continues as anonymous.
func LoadSession(store SessionGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				slog.Warn("session lookup failed", "error", err)
				data = nil
			}
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), Viewer{Session: data})))
		})
	}
}

// RequireSession answers 401 unless a session exists. Used by the second
// factor routes, which run before the session is admin.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ViewerFromCtx(r.Context()).SignedIn() {
			render.Error(w, http.StatusUnauthorized, "Sign in required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin answers 401 unless the viewer is the signed-in owner.
// Must be applied after LoadSession.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ViewerFromCtx(r.Context()).IsAdmin() {
			render.Error(w, http.StatusUnauthorized, "Admin session required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithViewer returns a copy of ctx carrying v.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// ViewerFromCtx returns the request's Viewer, or an anonymous one.
func ViewerFromCtx(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerKey).(Viewer)
	return v
}
