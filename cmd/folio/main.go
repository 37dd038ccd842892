// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Folio server. It loads
// configuration, connects to services, sets up routing, and starts the HTTP
// server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"folio/internal/authoring"
	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/contact"
	"folio/internal/database"
	"folio/internal/handlers"
	"folio/internal/mail"
	"folio/internal/middleware"
	"folio/internal/router"
	"folio/internal/session"
	"folio/internal/storage"
	"folio/internal/store"
	"folio/web"
)

// Rate limit for login, contact and relay routes: 1 request/s per client,
// bursts of 5.
const (
	formRate  = 1.0
	formBurst = 5
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	ctx := context.Background()

	// Connect to PostgreSQL and run pending migrations.
	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Create the owner account on first boot (no-op afterwards).
	if err := database.SeedOwner(ctx, db, cfg.OwnerEmail, cfg.OwnerPassword); err != nil {
		slog.Error("failed to seed owner account", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (sessions, auth events, list cache).
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	lists := cache.NewListCache(valkeyClient, cache.DefaultListTTL)

	// Initialize data stores.
	postStore := store.NewPostStore(db)
	projectStore := store.NewProjectStore(db)
	messageStore := store.NewMessageStore(db)
	userStore := store.NewUserStore(db)

	// Email provider (optional; the relay answers 500 without it).
	var sender mail.Sender
	if cfg.MailEnabled() {
		rs, err := mail.NewResendSender(cfg.ResendAPIKey, cfg.ResendBaseURL)
		if err != nil {
			slog.Error("failed to initialize email provider", "error", err)
			os.Exit(1)
		}
		sender = rs
	} else {
		slog.Warn("RESEND_API_KEY not set; email relay disabled")
	}

	// Contact notifications go through the external relay when one is
	// configured, otherwise straight to the provider.
	var notifier contact.Notifier
	switch {
	case cfg.ContactRelayURL != "":
		notifier = contact.NewRelayClient(cfg.ContactRelayURL, nil)
	case sender != nil:
		notifier = contact.NewMailNotifier(sender, cfg.MailFrom, cfg.MailTo)
	default:
		slog.Warn("no contact notifier configured; messages are stored only")
	}
	contactService := contact.NewService(messageStore, notifier, contact.DefaultNotifyTimeout)

	// Connect to S3-compatible object storage (optional; uploads answer 503
	// without it).
	var uploader handlers.Uploader
	if cfg.StorageEnabled() {
		storageClient, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		uploader = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured; media uploads disabled")
	}

	// Create handler groups with their dependencies.
	editor := authoring.NewEditor(postStore, projectStore)
	h := router.Handlers{
		Posts:    handlers.NewPosts(postStore, editor, lists),
		Projects: handlers.NewProjects(projectStore, editor, lists),
		Contact:  handlers.NewContact(contactService),
		Relay:    handlers.NewRelay(sender, cfg.MailFrom, cfg.MailTo),
		Media:    handlers.NewMedia(uploader),
		Admin:    handlers.NewAdmin(messageStore, postStore, projectStore, lists),
		Auth:     handlers.NewAuth(userStore, sessionStore),
	}

	limiter := middleware.NewRateLimiter(formRate, formBurst)
	defer limiter.Stop()

	r := router.New(sessionStore, h, router.Options{
		SecureCookies: secureCookies,
		TrustProxy:    cfg.TrustProxy,
		CORSOrigins:   cfg.CORSOrigins,
		Limiter:       limiter,
		Frontend:      web.Dist(),
	})

	// WriteTimeout stays zero so the auth event stream is not cut off; the
	// JSON handlers bound their own work through the request context.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// parseLevel maps LOG_LEVEL to a slog level, defaulting to info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
