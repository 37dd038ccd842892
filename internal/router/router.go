// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains. The JSON API
// lives under /api; every other GET falls through to the embedded front end.
package router

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"folio/internal/handlers"
	"folio/internal/middleware"
	"folio/internal/render"
)

// Handlers are the endpoint groups mounted under /api.
type Handlers struct {
	Posts    *handlers.Posts
	Projects *handlers.Projects
	Contact  *handlers.Contact
	Relay    *handlers.Relay
	Media    *handlers.Media
	Admin    *handlers.Admin
	Auth     *handlers.Auth
}

// Options tune the middleware stack.
type Options struct {
	SecureCookies bool     // Secure cookies and HSTS
	TrustProxy    bool     // take the client address from forwarding headers
	CORSOrigins   []string // origins allowed to call the API
	Limiter       *middleware.RateLimiter
	Frontend      fs.FS // SPA build; nil disables the fallback
}

// contentHandler is the endpoint set shared by posts and projects.
type contentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	New(w http.ResponseWriter, r *http.Request)
	SaveDraft(w http.ResponseWriter, r *http.Request)
	Publish(w http.ResponseWriter, r *http.Request)
	Feature(w http.ResponseWriter, r *http.Request)
	Pin(w http.ResponseWriter, r *http.Request)
	Unpin(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// New creates the configured Chi router.
func New(sessions middleware.SessionGetter, h Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders(opts.SecureCookies))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.CSRFHeaderName},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.LoadSession(sessions))

	csrf := middleware.NewCSRF(opts.SecureCookies)
	limited := func(next http.Handler) http.Handler { return next }
	if opts.Limiter != nil {
		limited = opts.Limiter.Middleware
	}

	// Health check: no auth, no CSRF.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			render.Error(w, http.StatusNotFound, "Not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			render.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		})

		r.Route("/posts", func(r chi.Router) { contentRoutes(r, h.Posts, csrf) })
		r.Route("/projects", func(r chi.Router) { contentRoutes(r, h.Projects, csrf) })

		// Public form endpoints.
		r.With(limited).Post("/contact", h.Contact.Submit)
		r.With(limited).HandleFunc("/send-email", h.Relay.SendEmail)

		r.Route("/auth", func(r chi.Router) {
			r.With(limited).Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(csrf)
				r.Get("/session", h.Auth.Session)
				r.Get("/events", h.Auth.Events)
				r.Post("/logout", h.Auth.Logout)

				// 2FA needs a session but not a completed second factor.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSession)
					r.Post("/2fa/setup", h.Auth.TwoFASetup)
					r.With(limited).Post("/2fa/verify", h.Auth.TwoFAVerify)
				})
			})
		})

		// Owner-only endpoints.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Use(csrf)
			r.Post("/media", h.Media.Upload)
			r.Get("/messages", h.Admin.Messages)
			r.Post("/admin/import", h.Admin.Import)
		})
	})

	if opts.Frontend != nil {
		r.Get("/*", spaHandler(opts.Frontend))
	}

	return r
}

// contentRoutes mounts the listing, detail and authoring endpoints of one
// content family.
func contentRoutes(r chi.Router, h contentHandler, csrf func(http.Handler) http.Handler) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Use(csrf)
		r.Post("/new", h.New)
		r.Put("/{id}/draft", h.SaveDraft)
		r.Post("/{id}/publish", h.Publish)
		r.Post("/{id}/feature", h.Feature)
		r.Post("/{id}/pin", h.Pin)
		r.Delete("/{id}/pin", h.Unpin)
		r.Delete("/{id}", h.Delete)
	})
}

// spaHandler serves files from the front-end build and answers every other
// path with index.html so client-side routes survive a reload.
func spaHandler(dist fs.FS) http.HandlerFunc {
	files := http.FileServerFS(dist)
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name != "" && name != "index.html" {
			if info, err := fs.Stat(dist, name); err == nil && !info.IsDir() {
				w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
				files.ServeHTTP(w, r)
				return
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
		}

		index, err := fs.ReadFile(dist, "index.html")
		if err != nil {
			http.Error(w, "Front end not built", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		w.Write(index)
	}
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
