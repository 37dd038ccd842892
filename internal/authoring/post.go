// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package authoring

import (
	"context"

	"folio/internal/models"
	"folio/internal/sanitize"
)

// PostSession is an opened post detail page.
type PostSession struct {
	Mode Mode        `json:"mode"`
	Post models.Post `json:"post"`
}

// NewPost returns the local defaults for a post that does not exist yet.
func (e *Editor) NewPost(id string, typ models.PostType) models.Post {
	if typ != models.PostTypeVlog {
		typ = models.PostTypeBlog
	}
	return models.Post{
		ID:     id,
		Type:   typ,
		Date:   e.now().Format(displayDate),
		Status: models.StatusDraft,
	}
}

// OpenPost resolves the detail page for id. Flags apply only when admin is
// true; the public never sees drafts.
func (e *Editor) OpenPost(ctx context.Context, id string, flags Flags, admin bool) (*PostSession, error) {
	if admin && flags.New {
		return &PostSession{Mode: ModeNew, Post: e.NewPost(id, "")}, nil
	}

	p, err := e.posts.Get(ctx, id)
	if p, err = lookup(p, err, admin); err != nil {
		return nil, err
	}

	mode := ModeViewing
	if admin && flags.Edit {
		mode = ModeEditing
	}
	return &PostSession{Mode: mode, Post: *p}, nil
}

// SavePostDraft upserts the form state as a draft under routeID (or the
// user-edited slug in p.ID). Empty fields get defaults; it never rejects
// the input.
func (e *Editor) SavePostDraft(ctx context.Context, routeID string, p models.Post) (*models.Post, error) {
	return e.savePost(ctx, routeID, p, models.StatusDraft)
}

// PublishPost upserts the form state as published and returns the saved
// post with the read-only route to navigate to.
func (e *Editor) PublishPost(ctx context.Context, routeID string, p models.Post) (*models.Post, string, error) {
	saved, err := e.savePost(ctx, routeID, p, models.StatusPublished)
	if err != nil {
		return nil, "", err
	}
	return saved, PostRoute(saved.ID), nil
}

func (e *Editor) savePost(ctx context.Context, routeID string, p models.Post, status models.Status) (*models.Post, error) {
	p.ID = resolveID(routeID, p.ID)
	if p.Type != models.PostTypeVlog {
		p.Type = models.PostTypeBlog
	}
	p.Title = orDefault(p.Title, DefaultPostTitle)
	p.Excerpt = orDefault(p.Excerpt, DefaultPostExcerpt)
	p.Date = orDefault(p.Date, e.now().Format(displayDate))
	p.Content = sanitize.HTML(p.Content)
	if p.Type == models.PostTypeBlog {
		p.ReadTime = ReadTime(p.Content)
	}
	p.Status = status

	return e.posts.Upsert(ctx, &p)
}
