// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"folio/internal/cache"
	"folio/internal/models"
	"folio/internal/render"
	"folio/internal/seed"
)

// defaultMessageLimit and maxMessageLimit bound the inbox page size.
const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

// MessageLister reads stored contact messages, newest first.
type MessageLister interface {
	List(ctx context.Context, limit int) ([]models.Message, error)
}

// Admin serves the owner-only dashboard endpoints that are not tied to a
// single content family.
type Admin struct {
	messages MessageLister
	posts    seed.PostWriter
	projects seed.ProjectWriter
	cache    *cache.ListCache
}

// NewAdmin creates the admin handlers.
func NewAdmin(messages MessageLister, posts seed.PostWriter, projects seed.ProjectWriter, lists *cache.ListCache) *Admin {
	return &Admin{messages: messages, posts: posts, projects: projects, cache: lists}
}

type messagesResponse struct {
	Items []models.Message `json:"items"`
}

// Messages serves GET /api/messages?limit=N.
func (a *Admin) Messages(w http.ResponseWriter, r *http.Request) {
	limit := defaultMessageLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = min(v, maxMessageLimit)
	}

	items, err := a.messages.List(r.Context(), limit)
	if err != nil {
		slog.Error("list messages failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "Failed to load messages.")
		return
	}
	if items == nil {
		items = []models.Message{}
	}
	render.JSON(w, http.StatusOK, messagesResponse{Items: items})
}

type importResponse struct {
	Imported seed.Counts `json:"imported"`
	Error    string      `json:"error,omitempty"`
}

// Import serves POST /api/admin/import: the bundled catalogue is upserted
// as published content. On failure the counts of rows already written are
// returned alongside the error.
func (a *Admin) Import(w http.ResponseWriter, r *http.Request) {
	cat, err := seed.Bundled()
	if err != nil {
		slog.Error("parse bundled catalogue failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "Bundled content is invalid.")
		return
	}

	n, err := cat.Apply(r.Context(), a.posts, a.projects)
	a.cache.InvalidateAll(r.Context())
	if err != nil {
		slog.Error("import failed", "error", err, "posts", n.Posts, "projects", n.Projects)
		render.JSON(w, http.StatusInternalServerError, importResponse{Imported: n, Error: "Import failed."})
		return
	}

	slog.Info("content imported", "posts", n.Posts, "projects", n.Projects)
	render.JSON(w, http.StatusOK, importResponse{Imported: n})
}
