// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API consumed by the single-page
// front end: content listings and detail pages, the authoring workflow,
// contact submissions, the email relay, uploads and owner sign-in.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"folio/internal/cache"
	"folio/internal/render"
	"folio/internal/store"
)

// listNotice is shown in place of a listing that could not be loaded.
const listNotice = "Content could not be loaded right now. Please try again later."

// flagRepository is the storage behind the admin row actions shared by
// posts and projects.
type flagRepository interface {
	Delete(ctx context.Context, id string) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	Pin(ctx context.Context, id string) error
	Unpin(ctx context.Context, id string) error
}

// rowActions implements the feature, pin, unpin and delete endpoints for
// one content family. what names the family in messages; back is its
// listing route.
type rowActions struct {
	repo  flagRepository
	cache *cache.ListCache
	what  string
	back  string
}

type featureRequest struct {
	Featured bool `json:"featured"`
}

// Feature sets or clears the featured flag from {"featured": bool}.
func (a rowActions) Feature(w http.ResponseWriter, r *http.Request) {
	var req featureRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	id := chi.URLParam(r, "id")
	a.apply(w, r, id, "feature", a.repo.SetFeatured(r.Context(), id, req.Featured))
}

// Pin makes the row the only pinned one of its family.
func (a rowActions) Pin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.apply(w, r, id, "pin", a.repo.Pin(r.Context(), id))
}

// Unpin clears the row's pinned flag.
func (a rowActions) Unpin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.apply(w, r, id, "unpin", a.repo.Unpin(r.Context(), id))
}

// Delete removes the row. Uploaded images it referenced are left in the
// bucket.
func (a rowActions) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.apply(w, r, id, "delete", a.repo.Delete(r.Context(), id))
}

func (a rowActions) apply(w http.ResponseWriter, r *http.Request, id, action string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		render.NotFound(w, a.what, a.back)
		return
	}
	if err != nil {
		slog.Error(a.what+" "+action+" failed", "id", id, "error", err)
		render.Error(w, http.StatusInternalServerError, "Failed to "+action+" "+a.what+".")
		return
	}
	a.cache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// listResponse is a full listing. Drafts is only filled for the admin on
// request.
type listResponse[T any] struct {
	Items  []T    `json:"items"`
	Drafts []T    `json:"drafts,omitempty"`
	Notice string `json:"notice,omitempty"`
}

// teaserResponse is a homepage teaser block.
type teaserResponse[T any] struct {
	Hero   *T     `json:"hero"`
	Items  []T    `json:"items"`
	Notice string `json:"notice,omitempty"`
}

// queryFlag reads a boolean query flag such as ?edit=true.
func queryFlag(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "true"
}
