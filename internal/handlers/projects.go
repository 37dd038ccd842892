// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"folio/internal/authoring"
	"folio/internal/cache"
	"folio/internal/listing"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/render"
	"folio/internal/store"
)

// ProjectRepository is the project storage the handlers need besides the
// editor.
type ProjectRepository interface {
	flagRepository
	List(ctx context.Context, f store.ProjectFilter) ([]models.Project, error)
}

// Projects serves the portfolio endpoints.
type Projects struct {
	rowActions
	projects ProjectRepository
	editor   *authoring.Editor
	cache    *cache.ListCache
	now      func() time.Time
}

// NewProjects creates the project handlers. lists may be nil.
func NewProjects(projects ProjectRepository, editor *authoring.Editor, lists *cache.ListCache) *Projects {
	return &Projects{
		rowActions: rowActions{repo: projects, cache: lists, what: "Project", back: "/portfolio"},
		projects:   projects,
		editor:     editor,
		cache:      lists,
		now:        time.Now,
	}
}

// List serves GET /api/projects with the same tab, teaser and drafts
// parameters as posts. tab matches a substring of the category.
func (h *Projects) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	withDrafts := middleware.ViewerFromCtx(ctx).IsAdmin() && q.Get("drafts") == "true"

	key, cacheable := h.cache.Key(ctx, "projects", q)
	cacheable = cacheable && !withDrafts
	if cacheable {
		if body, ok := h.cache.Get(ctx, key); ok {
			render.Bytes(w, http.StatusOK, body)
			return
		}
	}

	var filter store.ProjectFilter
	if !withDrafts {
		filter.Status = models.StatusPublished
	}

	var notice string
	rows, err := h.projects.List(ctx, filter)
	if err != nil {
		slog.Error("list projects failed", "error", err)
		rows, notice = nil, listNotice
	}

	published, drafts := listing.SplitDrafts(listing.Visible(rows, withDrafts))
	published = listing.SortProjects(listing.FilterProjects(published, q.Get("tab")))

	var resp any
	switch q.Get("teaser") {
	case "home":
		v := listing.Teaser(published, listing.FeaturedOrPinned)
		resp = teaserResponse[models.Project]{Hero: v.Hero, Items: v.Items, Notice: notice}
	case "thoughts":
		v := listing.Teaser(published, listing.Featured)
		resp = teaserResponse[models.Project]{Hero: v.Hero, Items: v.Items, Notice: notice}
	default:
		lr := listResponse[models.Project]{Items: published, Notice: notice}
		if withDrafts {
			lr.Drafts = listing.SortProjects(drafts)
		}
		resp = lr
	}

	body, err := json.Marshal(resp)
	if err != nil {
		slog.Error("encode project list failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if cacheable && notice == "" {
		h.cache.Set(ctx, key, body)
	}
	render.Bytes(w, http.StatusOK, body)
}

// Get serves GET /api/projects/{id}.
func (h *Projects) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	flags := authoring.Flags{Edit: queryFlag(r, "edit"), New: queryFlag(r, "new")}

	sess, err := h.editor.OpenProject(r.Context(), id, flags, middleware.ViewerFromCtx(r.Context()).IsAdmin())
	if errors.Is(err, authoring.ErrNotFound) {
		render.NotFound(w, "Project", "/portfolio")
		return
	}
	if err != nil {
		slog.Error("open project failed", "id", id, "error", err)
		render.Error(w, http.StatusInternalServerError, "Failed to load project.")
		return
	}
	render.JSON(w, http.StatusOK, sess)
}

// New serves POST /api/projects/new.
func (h *Projects) New(w http.ResponseWriter, r *http.Request) {
	id := authoring.NewProjectID(h.now())
	render.JSON(w, http.StatusCreated, newItemResponse[models.Project]{
		ID:    id,
		Route: authoring.EditRoute(authoring.ProjectRoute(id), true),
		Item:  h.editor.NewProject(id),
	})
}

// SaveDraft serves PUT /api/projects/{id}/draft.
func (h *Projects) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if err := render.Decode(w, r, &p); err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	saved, err := h.editor.SaveProjectDraft(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		slog.Error("save project draft failed", "id", chi.URLParam(r, "id"), "error", err)
		render.Error(w, http.StatusInternalServerError, "Failed to save draft.")
		return
	}
	h.cache.InvalidateAll(r.Context())
	render.JSON(w, http.StatusOK, savedResponse[models.Project]{
		Item:  saved,
		Route: authoring.EditRoute(authoring.ProjectRoute(saved.ID), false),
	})
}

// Publish serves POST /api/projects/{id}/publish.
func (h *Projects) Publish(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if err := render.Decode(w, r, &p); err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	saved, route, err := h.editor.PublishProject(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		slog.Error("publish project failed", "id", chi.URLParam(r, "id"), "error", err)
		render.Error(w, http.StatusInternalServerError, "Failed to publish project.")
		return
	}
	h.cache.InvalidateAll(r.Context())
	render.JSON(w, http.StatusOK, savedResponse[models.Project]{Item: saved, Route: route})
}
