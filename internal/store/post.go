// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"folio/internal/models"
)

const postColumns = `id, type, title, excerpt, content, thumbnail, link, location,
	date, duration, read_time, status, featured, pinned, created_at, updated_at`

// PostFilter narrows a post listing. Zero values mean "any".
type PostFilter struct {
	Status models.Status
	Type   models.PostType
}

// PostStore handles all post-related database operations.
type PostStore struct {
	db    *sql.DB
	flags flagStore
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db, flags: flagStore{db: db, table: "posts"}}
}

func scanPost(row scanner) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(
		&p.ID, &p.Type, &p.Title, &p.Excerpt, &p.Content, &p.Thumbnail, &p.Link, &p.Location,
		&p.Date, &p.Duration, &p.ReadTime, &p.Status, &p.Featured, &p.Pinned,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// List returns posts matching the filter, newest rows first. Display
// ordering is applied by the caller.
func (s *PostStore) List(ctx context.Context, f PostFilter) ([]models.Post, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// Get retrieves a post by id.
func (s *PostStore) Get(ctx context.Context, id string) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

// Upsert inserts the post or replaces the editable fields of an existing
// row with the same id. The pinned flag is left alone; use Pin and Unpin.
func (s *PostStore) Upsert(ctx context.Context, p *models.Post) (*models.Post, error) {
	saved, err := scanPost(s.db.QueryRowContext(ctx, `
		INSERT INTO posts (id, type, title, excerpt, content, thumbnail, link, location,
		                   date, duration, read_time, status, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			title = EXCLUDED.title,
			excerpt = EXCLUDED.excerpt,
			content = EXCLUDED.content,
			thumbnail = EXCLUDED.thumbnail,
			link = EXCLUDED.link,
			location = EXCLUDED.location,
			date = EXCLUDED.date,
			duration = EXCLUDED.duration,
			read_time = EXCLUDED.read_time,
			status = EXCLUDED.status,
			featured = EXCLUDED.featured,
			updated_at = NOW()
		RETURNING `+postColumns,
		p.ID, p.Type, p.Title, p.Excerpt, p.Content, p.Thumbnail, p.Link, p.Location,
		p.Date, p.Duration, p.ReadTime, p.Status, p.Featured,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert post: %w", err)
	}
	return saved, nil
}

// Delete removes a post permanently.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	return s.flags.delete(ctx, id)
}

// SetFeatured sets or clears the featured flag.
func (s *PostStore) SetFeatured(ctx context.Context, id string, featured bool) error {
	return s.flags.setFeatured(ctx, id, featured)
}

// Pin makes id the only pinned post.
func (s *PostStore) Pin(ctx context.Context, id string) error {
	return s.flags.pin(ctx, id)
}

// Unpin clears the pinned flag on id.
func (s *PostStore) Unpin(ctx context.Context, id string) error {
	return s.flags.unpin(ctx, id)
}
