// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package authoring implements the draft workflow behind the post and
// project detail pages: opening an item as new, editing or read-only,
// saving drafts with permissive defaults, and publishing.
package authoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"folio/internal/models"
	"folio/internal/sanitize"
	"folio/internal/slug"
	"folio/internal/store"
)

// ErrNotFound is returned when an item does not exist or is not visible to
// the viewer.
var ErrNotFound = errors.New("authoring: not found")

// Mode is the state of a detail page.
type Mode string

const (
	ModeNew     Mode = "new"     // no row yet, local defaults
	ModeEditing Mode = "editing" // row loaded into an editable copy
	ModeViewing Mode = "viewing" // read-only
)

// Defaults substituted for empty fields on save.
const (
	DefaultPostTitle      = "Untitled Story"
	DefaultPostExcerpt    = "A new story is taking shape. Check back soon."
	DefaultProjectTitle   = "Untitled Project"
	DefaultProjectExcerpt = "Project details are on their way."
)

// WordsPerMinute is the reading speed used for read-time estimates.
const WordsPerMinute = 200

// displayDate is the format of dates filled in for new items.
const displayDate = "Jan 2, 2006"

// Flags are the detail-route query flags (?edit=true, ?new=true). They are
// honoured only for the admin.
type Flags struct {
	Edit bool
	New  bool
}

// PostRepository is the storage the editor needs for posts.
type PostRepository interface {
	Get(ctx context.Context, id string) (*models.Post, error)
	Upsert(ctx context.Context, p *models.Post) (*models.Post, error)
}

// ProjectRepository is the storage the editor needs for projects.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*models.Project, error)
	Upsert(ctx context.Context, p *models.Project) (*models.Project, error)
}

// Editor runs the authoring workflow for both content families.
type Editor struct {
	posts    PostRepository
	projects ProjectRepository
	now      func() time.Time
}

// NewEditor creates an Editor over the given repositories.
func NewEditor(posts PostRepository, projects ProjectRepository) *Editor {
	return &Editor{posts: posts, projects: projects, now: time.Now}
}

// NewPostID returns a timestamp-derived id for a post created at t.
func NewPostID(t time.Time) string {
	return "post-" + strconv.FormatInt(t.UnixMilli(), 10)
}

// NewProjectID returns a timestamp-derived id for a project created at t.
func NewProjectID(t time.Time) string {
	return "project-" + strconv.FormatInt(t.UnixMilli(), 10)
}

// PostRoute is the read-only route of a post.
func PostRoute(id string) string { return "/blog/" + id }

// ProjectRoute is the read-only route of a project.
func ProjectRoute(id string) string { return "/portfolio/" + id }

// EditRoute appends the edit flags to a detail route.
func EditRoute(route string, isNew bool) string {
	if isNew {
		return route + "?edit=true&new=true"
	}
	return route + "?edit=true"
}

// ReadTime estimates reading time from the words in an HTML body: words
// divided by WordsPerMinute, rounded up, never less than one minute.
func ReadTime(html string) string {
	minutes := int(math.Ceil(float64(sanitize.Words(html)) / WordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// resolveID picks the id a save is written under: a user-edited slug when
// one survives normalisation, otherwise the route id.
func resolveID(routeID, edited string) string {
	if s := slug.Generate(edited); s != "" {
		return s
	}
	return routeID
}

// lookup maps store misses to ErrNotFound and hides drafts from the public.
func lookup[T models.Item](item *T, err error, admin bool) (*T, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !admin && !models.IsPublished(*item) {
		return nil, ErrNotFound
	}
	return item, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}
