// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seed holds the bundled starter catalogue of posts and projects
// and imports it into the database on request.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"folio/internal/models"
	"folio/internal/sanitize"
)

//go:embed content.yaml
var bundled []byte

// Catalogue is the parsed seed file.
type Catalogue struct {
	Posts    []models.Post    `yaml:"posts"`
	Projects []models.Project `yaml:"projects"`
}

// Counts reports how many rows an import wrote.
type Counts struct {
	Posts    int `json:"posts"`
	Projects int `json:"projects"`
}

// PostWriter is the storage an import needs for posts.
type PostWriter interface {
	Upsert(ctx context.Context, p *models.Post) (*models.Post, error)
	Pin(ctx context.Context, id string) error
}

// ProjectWriter is the storage an import needs for projects.
type ProjectWriter interface {
	Upsert(ctx context.Context, p *models.Project) (*models.Project, error)
	Pin(ctx context.Context, id string) error
}

// Bundled parses the embedded catalogue.
func Bundled() (*Catalogue, error) {
	return Parse(bundled)
}

// Parse decodes a catalogue. Unknown keys are rejected, as are entries
// without an id.
func Parse(data []byte) (*Catalogue, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalogue
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse seed catalogue: %w", err)
	}

	for i, p := range c.Posts {
		if p.ID == "" {
			return nil, fmt.Errorf("seed post #%d: id is required", i+1)
		}
	}
	for i, p := range c.Projects {
		if p.ID == "" {
			return nil, fmt.Errorf("seed project #%d: id is required", i+1)
		}
	}
	return &c, nil
}

// Apply upserts every entry as published. Pinned entries are pinned after
// their upsert, so when several are marked the last one keeps the pin.
// It stops at the first failure; rows written before it stay written.
func (c *Catalogue) Apply(ctx context.Context, posts PostWriter, projects ProjectWriter) (Counts, error) {
	var n Counts

	for _, p := range c.Posts {
		p.Status = models.StatusPublished
		if p.Type != models.PostTypeVlog {
			p.Type = models.PostTypeBlog
		}
		p.Content = sanitize.HTML(p.Content)
		if _, err := posts.Upsert(ctx, &p); err != nil {
			return n, fmt.Errorf("import post %s: %w", p.ID, err)
		}
		if p.Pinned {
			if err := posts.Pin(ctx, p.ID); err != nil {
				return n, fmt.Errorf("pin post %s: %w", p.ID, err)
			}
		}
		n.Posts++
	}

	for _, p := range c.Projects {
		p.Status = models.StatusPublished
		p.NormalizeLists()
		if _, err := projects.Upsert(ctx, &p); err != nil {
			return n, fmt.Errorf("import project %s: %w", p.ID, err)
		}
		if p.Pinned {
			if err := projects.Pin(ctx, p.ID); err != nil {
				return n, fmt.Errorf("pin project %s: %w", p.ID, err)
			}
		}
		n.Projects++
	}

	return n, nil
}
