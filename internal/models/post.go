// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// PostType distinguishes written posts from video posts.
type PostType string

const (
	PostTypeBlog PostType = "blog"
	PostTypeVlog PostType = "vlog"
)

// Post is a blog or vlog entry. Content is stored as sanitised HTML; Link
// points at the external video for vlogs. Date is free text used for display
// and a best-effort sort.
type Post struct {
	ID        string    `json:"id" yaml:"id"`
	Type      PostType  `json:"type" yaml:"type"`
	Title     string    `json:"title" yaml:"title"`
	Excerpt   string    `json:"excerpt" yaml:"excerpt"`
	Content   string    `json:"content,omitempty" yaml:"content"`
	Thumbnail string    `json:"thumbnail,omitempty" yaml:"thumbnail"`
	Link      string    `json:"link,omitempty" yaml:"link"`
	Location  string    `json:"location,omitempty" yaml:"location"`
	Date      string    `json:"date" yaml:"date"`
	Duration  string    `json:"duration,omitempty" yaml:"duration"`
	ReadTime  string    `json:"readTime,omitempty" yaml:"readTime"` // read_time column
	Status    Status    `json:"status" yaml:"status"`
	Featured  bool      `json:"featured" yaml:"featured"`
	Pinned    bool      `json:"pinned" yaml:"pinned"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

func (p Post) Kind() Kind          { return KindPost }
func (p Post) ItemID() string      { return p.ID }
func (p Post) ItemStatus() Status  { return p.Status }
func (p Post) IsFeatured() bool    { return p.Featured }
func (p Post) IsPinned() bool      { return p.Pinned }
func (p Post) DisplayDate() string { return p.Date }
func (p Post) isItem()             {}
