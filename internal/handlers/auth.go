// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/render"
	"folio/internal/session"
	"folio/internal/store"
)

// totpIssuer labels the account in authenticator apps.
const totpIssuer = "Folio"

// eventKeepAlive is how often an idle event stream gets a comment line.
const eventKeepAlive = 25 * time.Second

// UserRepository is the owner account storage.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetTOTPSecret(ctx context.Context, userID uuid.UUID, secret string) error
	EnableTOTP(ctx context.Context, userID uuid.UUID) error
	CheckPassword(u *models.User, password string) bool
}

// SessionManager creates, updates and ends sessions and fans out auth
// state changes.
type SessionManager interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Update(ctx context.Context, r *http.Request, data *session.Data) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
	Publish(ctx context.Context, ev session.Event) error
	Subscribe(ctx context.Context) (<-chan session.Event, error)
}

// Auth groups the owner sign-in endpoints.
type Auth struct {
	users    UserRepository
	sessions SessionManager
	validate *validator.Validate
}

// NewAuth creates the auth handlers.
func NewAuth(users UserRepository, sessions SessionManager) *Auth {
	return &Auth{users: users, sessions: sessions, validate: validator.New()}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// sessionView is what the front end learns about the current session.
type sessionView struct {
	Email                string `json:"email"`
	DisplayName          string `json:"display_name"`
	Admin                bool   `json:"admin"`
	SecondFactorRequired bool   `json:"second_factor_required"`
}

func viewOf(d *session.Data) *sessionView {
	if d == nil {
		return nil
	}
	return &sessionView{
		Email:                d.Email,
		DisplayName:          d.DisplayName,
		Admin:                d.TwoFADone,
		SecondFactorRequired: !d.TwoFADone,
	}
}

type sessionResponse struct {
	Session *sessionView `json:"session"`
}

// Login serves POST /api/auth/login. When the owner has TOTP enabled the
// session stays non-admin until /api/auth/2fa/verify succeeds.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		render.Error(w, http.StatusBadRequest, "Please enter a valid email and password.")
		return
	}

	user, err := a.users.FindByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("login lookup failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		render.Error(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	data := &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		TwoFADone:   !user.NeedsSecondFactor(),
	}
	if _, err := a.sessions.Create(r.Context(), w, data); err != nil {
		slog.Error("session create failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if data.TwoFADone {
		a.publish(r.Context(), session.EventSignedIn, user.ID)
	}

	render.JSON(w, http.StatusOK, sessionResponse{Session: viewOf(data)})
}

// Session serves GET /api/auth/session. An anonymous caller gets
// {"session": null}.
func (a *Auth) Session(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, sessionResponse{Session: viewOf(middleware.ViewerFromCtx(r.Context()).Session)})
}

// Logout serves POST /api/auth/logout.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFromCtx(r.Context())
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "Failed to sign out.")
		return
	}
	if viewer.SignedIn() {
		a.publish(r.Context(), session.EventSignedOut, viewer.Session.UserID)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Auth) publish(ctx context.Context, typ session.EventType, userID uuid.UUID) {
	if err := a.sessions.Publish(ctx, session.Event{Type: typ, UserID: userID}); err != nil {
		slog.Warn("auth event publish failed", "type", typ, "error", err)
	}
}

// Events serves GET /api/auth/events as a server-sent event stream of sign
// in and sign out events, so open tabs can refresh their session.
func (a *Auth) Events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	events, err := a.sessions.Subscribe(ctx)
	if err != nil {
		slog.Error("auth event subscribe failed", "error", err)
		render.Error(w, http.StatusServiceUnavailable, "Event stream unavailable.")
		return
	}

	rc := http.NewResponseController(w)
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	if err := rc.Flush(); err != nil {
		return
	}

	ticker := time.NewTicker(eventKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
		case ev, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

type totpSetupResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"otpauth_url"`
	QRCode string `json:"qr_png"` // base64 PNG
}

// TwoFASetup serves POST /api/auth/2fa/setup. It issues a new secret that
// becomes active once a code is verified. Re-enrolment of an enabled
// factor is refused.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.ViewerFromCtx(r.Context()).Session

	user, err := a.users.FindByID(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if user.TOTPEnabled {
		render.Error(w, http.StatusConflict, "Two-factor authentication is already enabled.")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{Issuer: totpIssuer, AccountName: user.Email})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if err := a.users.SetTOTPSecret(r.Context(), user.ID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	render.JSON(w, http.StatusOK, totpSetupResponse{
		Secret: key.Secret(),
		URL:    key.URL(),
		QRCode: base64.StdEncoding.EncodeToString(png),
	})
}

type totpVerifyRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// TwoFAVerify serves POST /api/auth/2fa/verify. A valid code enables TOTP
// on first use and completes the session.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.ViewerFromCtx(r.Context()).Session

	var req totpVerifyRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		render.Error(w, http.StatusBadRequest, "Enter the 6-digit code from your authenticator app.")
		return
	}

	user, err := a.users.FindByID(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if user.TOTPSecret == nil {
		render.Error(w, http.StatusConflict, "Two-factor authentication is not set up.")
		return
	}
	if !totp.Validate(req.Code, *user.TOTPSecret) {
		render.Error(w, http.StatusUnauthorized, "Invalid code. Please try again.")
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(r.Context(), user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			render.Error(w, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}
	}

	wasAdmin := sess.TwoFADone
	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if !wasAdmin {
		a.publish(r.Context(), session.EventSignedIn, user.ID)
	}

	render.JSON(w, http.StatusOK, sessionResponse{Session: viewOf(sess)})
}
