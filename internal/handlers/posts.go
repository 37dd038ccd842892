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

// PostRepository is the post storage the handlers need besides the editor.
type PostRepository interface {
	flagRepository
	List(ctx context.Context, f store.PostFilter) ([]models.Post, error)
}

// Posts serves the blog/vlog endpoints.
type Posts struct {
	rowActions
	posts  PostRepository
	editor *authoring.Editor
	cache  *cache.ListCache
	now    func() time.Time
}

// NewPosts creates the post handlers. lists may be nil to disable caching.
func NewPosts(posts PostRepository, editor *authoring.Editor, lists *cache.ListCache) *Posts {
	return &Posts{
		rowActions: rowActions{repo: posts, cache: lists, what: "Post", back: "/blog"},
		posts:      posts,
		editor:     editor,
		cache:      lists,
		now:        time.Now,
	}
}

// List serves GET /api/posts. Query parameters:
//
//	type     blog or vlog, filtered in the database
//	tab      client tab; "All" or empty disables it
//	teaser   "home" (featured or pinned) or "thoughts" (featured only)
//	drafts   "true" adds the drafts section for the admin
//
// A storage failure yields an empty listing with a notice, not an error.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	withDrafts := middleware.ViewerFromCtx(ctx).IsAdmin() && q.Get("drafts") == "true"

	key, cacheable := h.cache.Key(ctx, "posts", q)
	cacheable = cacheable && !withDrafts
	if cacheable {
		if body, ok := h.cache.Get(ctx, key); ok {
			render.Bytes(w, http.StatusOK, body)
			return
		}
	}

	filter := store.PostFilter{Type: models.PostType(q.Get("type"))}
	if !withDrafts {
		filter.Status = models.StatusPublished
	}

	var notice string
	rows, err := h.posts.List(ctx, filter)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		rows, notice = nil, listNotice
	}

	published, drafts := listing.SplitDrafts(listing.Visible(rows, withDrafts))
	published = listing.SortPosts(listing.FilterPosts(published, q.Get("tab")))

	var resp any
	switch q.Get("teaser") {
	case "home":
		v := listing.Teaser(published, listing.FeaturedOrPinned)
		resp = teaserResponse[models.Post]{Hero: v.Hero, Items: v.Items, Notice: notice}
	case "thoughts":
		v := listing.Teaser(published, listing.Featured)
		resp = teaserResponse[models.Post]{Hero: v.Hero, Items: v.Items, Notice: notice}
	default:
		lr := listResponse[models.Post]{Items: published, Notice: notice}
		if withDrafts {
			lr.Drafts = listing.SortPosts(drafts)
		}
		resp = lr
	}

	body, err := json.Marshal(resp)
	if err != nil {
		slog.Error("encode post list failed", "error", err)
		render.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if cacheable && notice == "" {
		h.cache.Set(ctx, key, body)
	}
	render.Bytes(w, http.StatusOK, body)
}

// Get serves GET /api/posts/{id}. The admin may pass ?edit=true and
// ?new=true to open the editor.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	flags := authoring.Flags{Edit: queryFlag(r, "edit"), New: queryFlag(r, "new")}

	sess, err := h.editor.OpenPost(r.Context(), id, flags, middleware.ViewerFromCtx(r.Context()).IsAdmin())
	if errors.Is(err, authoring.ErrNotFound) {
		render.NotFound(w, "Post", "/blog")
		return
	}
	if err != nil {
		slog.Error("open post failed", "id", id, "error", err)
		render.Error(w, http.StatusInternalServerError, "Failed to load post.")
		return
	}
	render.JSON(w, http.StatusOK, sess)
}

type newItemResponse[T any] struct {
	ID    string `json:"id"`
	Route string `json:"route"`
	Item  T      `json:"item"`
}

// New serves POST /api/posts/new?type=blog|vlog. Nothing is stored until
// the first save.
func (h *Posts) New(w http.ResponseWriter, r *http.Request) {
	id := authoring.NewPostID(h.now())
	render.JSON(w, http.StatusCreated, newItemResponse[models.Post]{
		ID:    id,
		Route: authoring.EditRoute(authoring.PostRoute(id), true),
		Item:  h.editor.NewPost(id, models.PostType(r.URL.Query().Get("type"))),
	})
}

type savedResponse[T any] struct {
	Item  *T     `json:"item"`
	Route string `json:"route"`
}

// SaveDraft serves PUT /api/posts/{id}/draft.
func (h *Posts) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var p models.Post
	if err := render.Decode(w, r, &p); err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	saved, err := h.editor.SavePostDraft(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		slog.Error("save post draft failed", "id", chi.URLParam(r, "id"), "error", err)
		render.Error(w, http.StatusInternalServerError, "Failed to save draft.")
		return
	}
	h.cache.InvalidateAll(r.Context())
	render.JSON(w, http.StatusOK, savedResponse[models.Post]{
		Item:  saved,
		Route: authoring.EditRoute(authoring.PostRoute(saved.ID), false),
	})
}

// Publish serves POST /api/posts/{id}/publish and returns the read-only
// route to navigate to.
func (h *Posts) Publish(w http.ResponseWriter, r *http.Request) {
	var p models.Post
	if err := render.Decode(w, r, &p); err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	saved, route, err := h.editor.PublishPost(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		slog.Error("publish post failed", "id", chi.URLParam(r, "id"), "error", err)
		render.Error(w, http.StatusInternalServerError, "Failed to publish post.")
		return
	}
	h.cache.InvalidateAll(r.Context())
	render.JSON(w, http.StatusOK, savedResponse[models.Post]{Item: saved, Route: route})
}
