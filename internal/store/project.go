// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"folio/internal/models"
)

const projectColumns = `id, title, category, company, date, excerpt, description,
	tech_stack, tags, challenges, features, screenshots, demo_link, repo_link,
	status, featured, pinned, created_at, updated_at`

// ProjectFilter narrows a project listing. Zero values mean "any".
type ProjectFilter struct {
	Status models.Status
}

// ProjectStore handles experience/project rows (table experiences).
type ProjectStore struct {
	db    *sql.DB
	flags flagStore
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db, flags: flagStore{db: db, table: "experiences"}}
}

// List fields are JSONB columns; they are scanned as raw bytes and decoded.
func scanProject(row scanner) (*models.Project, error) {
	p := &models.Project{}
	var techStack, tags, challenges, features, screenshots []byte
	err := row.Scan(
		&p.ID, &p.Title, &p.Category, &p.Company, &p.Date, &p.Excerpt, &p.Description,
		&techStack, &tags, &challenges, &features, &screenshots, &p.DemoLink, &p.RepoLink,
		&p.Status, &p.Featured, &p.Pinned, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lists := []struct {
		raw []byte
		dst any
	}{
		{techStack, &p.TechStack},
		{tags, &p.Tags},
		{challenges, &p.Challenges},
		{features, &p.Features},
		{screenshots, &p.Screenshots},
	}
	for _, l := range lists {
		if len(l.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(l.raw, l.dst); err != nil {
			return nil, fmt.Errorf("decode list column: %w", err)
		}
	}
	p.NormalizeLists()
	return p, nil
}

func jsonArg(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// List returns projects matching the filter. Display ordering is applied
// by the caller.
func (s *ProjectStore) List(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM experiences`
	var args []any
	if f.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, f.Status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Get retrieves a project by id.
func (s *ProjectStore) Get(ctx context.Context, id string) (*models.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM experiences WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// Upsert inserts the project or replaces the editable fields of an existing
// row with the same id. The pinned flag is left alone; use Pin and Unpin.
func (s *ProjectStore) Upsert(ctx context.Context, p *models.Project) (*models.Project, error) {
	p.NormalizeLists()

	args := []any{p.ID, p.Title, p.Category, p.Company, p.Date, p.Excerpt, p.Description}
	for _, list := range []any{p.TechStack, p.Tags, p.Challenges, p.Features, p.Screenshots} {
		raw, err := jsonArg(list)
		if err != nil {
			return nil, fmt.Errorf("encode list column: %w", err)
		}
		args = append(args, raw)
	}
	args = append(args, p.DemoLink, p.RepoLink, p.Status, p.Featured)

	saved, err := scanProject(s.db.QueryRowContext(ctx, `
		INSERT INTO experiences (id, title, category, company, date, excerpt, description,
		                         tech_stack, tags, challenges, features, screenshots,
		                         demo_link, repo_link, status, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb, $10::jsonb, $11::jsonb, $12::jsonb,
		        $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			company = EXCLUDED.company,
			date = EXCLUDED.date,
			excerpt = EXCLUDED.excerpt,
			description = EXCLUDED.description,
			tech_stack = EXCLUDED.tech_stack,
			tags = EXCLUDED.tags,
			challenges = EXCLUDED.challenges,
			features = EXCLUDED.features,
			screenshots = EXCLUDED.screenshots,
			demo_link = EXCLUDED.demo_link,
			repo_link = EXCLUDED.repo_link,
			status = EXCLUDED.status,
			featured = EXCLUDED.featured,
			updated_at = NOW()
		RETURNING `+projectColumns, args...))
	if err != nil {
		return nil, fmt.Errorf("upsert project: %w", err)
	}
	return saved, nil
}

// Delete removes a project permanently.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	return s.flags.delete(ctx, id)
}

// SetFeatured sets or clears the featured flag.
func (s *ProjectStore) SetFeatured(ctx context.Context, id string, featured bool) error {
	return s.flags.setFeatured(ctx, id, featured)
}

// Pin makes id the only pinned project.
func (s *ProjectStore) Pin(ctx context.Context, id string) error {
	return s.flags.pin(ctx, id)
}

// Unpin clears the pinned flag on id.
func (s *ProjectStore) Unpin(ctx context.Context, id string) error {
	return s.flags.unpin(ctx, id)
}
