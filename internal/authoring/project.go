// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package authoring

import (
	"context"

	"folio/internal/models"
	"folio/internal/sanitize"
)

// ProjectSession is an opened project detail page.
type ProjectSession struct {
	Mode    Mode           `json:"mode"`
	Project models.Project `json:"project"`
}

// NewProject returns the local defaults for a project that does not exist yet.
func (e *Editor) NewProject(id string) models.Project {
	p := models.Project{
		ID:       id,
		Category: models.CategoryProject,
		Date:     e.now().Format("Jan 2006") + " – Present",
		Status:   models.StatusDraft,
	}
	p.NormalizeLists()
	return p
}

// OpenProject resolves the detail page for id. Flags apply only when admin
// is true; the public never sees drafts.
func (e *Editor) OpenProject(ctx context.Context, id string, flags Flags, admin bool) (*ProjectSession, error) {
	if admin && flags.New {
		return &ProjectSession{Mode: ModeNew, Project: e.NewProject(id)}, nil
	}

	p, err := e.projects.Get(ctx, id)
	if p, err = lookup(p, err, admin); err != nil {
		return nil, err
	}

	mode := ModeViewing
	if admin && flags.Edit {
		mode = ModeEditing
	}
	return &ProjectSession{Mode: mode, Project: *p}, nil
}

// SaveProjectDraft upserts the form state as a draft.
func (e *Editor) SaveProjectDraft(ctx context.Context, routeID string, p models.Project) (*models.Project, error) {
	return e.saveProject(ctx, routeID, p, models.StatusDraft)
}

// PublishProject upserts the form state as published and returns the
// read-only route.
func (e *Editor) PublishProject(ctx context.Context, routeID string, p models.Project) (*models.Project, string, error) {
	saved, err := e.saveProject(ctx, routeID, p, models.StatusPublished)
	if err != nil {
		return nil, "", err
	}
	return saved, ProjectRoute(saved.ID), nil
}

func (e *Editor) saveProject(ctx context.Context, routeID string, p models.Project, status models.Status) (*models.Project, error) {
	p.ID = resolveID(routeID, p.ID)
	p.Title = orDefault(p.Title, DefaultProjectTitle)
	p.Excerpt = orDefault(p.Excerpt, DefaultProjectExcerpt)
	p.Description = sanitize.HTML(p.Description)
	p.NormalizeLists()
	p.Status = status

	return e.projects.Upsert(ctx, &p)
}
