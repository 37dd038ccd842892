// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Project categories used by the portfolio tabs. The set is open: any other
// string is stored as-is.
const (
	CategoryWork     = "Work"
	CategoryProject  = "Project"
	CategoryStartup  = "Startup"
	CategoryResearch = "Research"
)

// Screenshot is an image attached to a project. On input it may be given
// either as a bare URL string or as an object with a caption.
type Screenshot struct {
	URL     string `json:"url" yaml:"url"`
	Caption string `json:"caption,omitempty" yaml:"caption"`
}

// UnmarshalJSON accepts "https://..." as well as {"url": "...", "caption": "..."}.
func (s *Screenshot) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		*s = Screenshot{URL: url}
		return nil
	}

	type plain Screenshot
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Screenshot(p)
	return nil
}

// Project is an experience or project entry shown in the portfolio.
type Project struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Category    string       `json:"category" yaml:"category"`
	Company     string       `json:"company" yaml:"company"`
	Date        string       `json:"date" yaml:"date"`
	Excerpt     string       `json:"excerpt" yaml:"excerpt"`
	Description string       `json:"description" yaml:"description"`
	TechStack   []string     `json:"tech_stack" yaml:"tech_stack"`
	Tags        []string     `json:"tags" yaml:"tags"`
	Challenges  []string     `json:"challenges" yaml:"challenges"`
	Features    []string     `json:"features" yaml:"features"`
	Screenshots []Screenshot `json:"screenshots" yaml:"screenshots"`
	DemoLink    string       `json:"demo_link,omitempty" yaml:"demo_link"`
	RepoLink    string       `json:"repo_link,omitempty" yaml:"repo_link"`
	Status      Status       `json:"status" yaml:"status"`
	Featured    bool         `json:"featured" yaml:"featured"`
	Pinned      bool         `json:"pinned" yaml:"pinned"`
	CreatedAt   time.Time    `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time    `json:"updated_at" yaml:"-"`
}

func (p Project) Kind() Kind          { return KindProject }
func (p Project) ItemID() string      { return p.ID }
func (p Project) ItemStatus() Status  { return p.Status }
func (p Project) IsFeatured() bool    { return p.Featured }
func (p Project) IsPinned() bool      { return p.Pinned }
func (p Project) DisplayDate() string { return p.Date }
func (p Project) isItem()             {}

// NormalizeLists replaces nil list fields with empty slices so they encode
// as [] rather than null.
func (p *Project) NormalizeLists() {
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Challenges == nil {
		p.Challenges = []string{}
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Screenshots == nil {
		p.Screenshots = []Screenshot{}
	}
}
