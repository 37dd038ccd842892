// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package listing turns the raw rows of a content family into what a page
// shows: visibility by viewer, ordering, homepage teasers and tab filters.
// Every function is pure and returns new slices.
package listing

import (
	"slices"
	"strings"

	"folio/internal/models"
)

// TabAll is the pseudo-tab that disables filtering.
const TabAll = "All"

// TeaserSize caps the number of non-hero rows in a teaser.
const TeaserSize = 3

// Visible drops drafts unless the viewer is the admin.
func Visible[T models.Item](items []T, admin bool) []T {
	if admin {
		return slices.Clone(items)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if models.IsPublished(it) {
			out = append(out, it)
		}
	}
	return out
}

// SplitDrafts separates published rows from drafts, keeping order.
func SplitDrafts[T models.Item](items []T) (published, drafts []T) {
	published = make([]T, 0, len(items))
	drafts = make([]T, 0)
	for _, it := range items {
		if models.IsPublished(it) {
			published = append(published, it)
		} else {
			drafts = append(drafts, it)
		}
	}
	return published, drafts
}

type keyed[T any, K any] struct {
	item T
	key  K
}

// sortByKey sorts a copy of items by a key computed once per row.
func sortByKey[T any, K any](items []T, key func(T) K, cmp func(a, b keyed[T, K]) int) []T {
	ks := make([]keyed[T, K], len(items))
	for i, it := range items {
		ks[i] = keyed[T, K]{item: it, key: key(it)}
	}
	slices.SortStableFunc(ks, cmp)

	out := make([]T, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}

// SortProjects orders experiences by the end of their date range, most
// recent first: open ranges, then parsed dates, then unparseable ones.
func SortProjects(projects []models.Project) []models.Project {
	return sortByKey(projects,
		func(p models.Project) EndDate { return ParseEndDate(p.Date) },
		func(a, b keyed[models.Project, EndDate]) int { return CompareEndDates(a.key, b.key) },
	)
}

// postKey is the sort key for posts.
type postKey struct {
	pinned bool
	date   EndDate
}

// SortPosts puts the pinned post first, then orders by date newest first.
// Dates that fail to parse sort last.
func SortPosts(posts []models.Post) []models.Post {
	return sortByKey(posts,
		func(p models.Post) postKey {
			k := postKey{pinned: p.Pinned}
			if t, ok := ParseDate(p.Date); ok {
				k.date = EndDate{Kind: DateParsed, At: t}
			}
			return k
		},
		func(a, b keyed[models.Post, postKey]) int {
			if a.key.pinned != b.key.pinned {
				if a.key.pinned {
					return -1
				}
				return 1
			}
			return CompareEndDates(a.key.date, b.key.date)
		},
	)
}

// TeaserRule selects which rows are eligible for a homepage teaser.
type TeaserRule int

const (
	// Featured admits rows flagged featured.
	Featured TeaserRule = iota
	// FeaturedOrPinned also admits the pinned row.
	FeaturedOrPinned
)

func (r TeaserRule) admits(it models.Item) bool {
	if it.IsFeatured() {
		return true
	}
	return r == FeaturedOrPinned && it.IsPinned()
}

// TeaserView is a teaser block: an optional hero and at most TeaserSize
// further rows.
type TeaserView[T models.Item] struct {
	Hero  *T  `json:"hero"`
	Items []T `json:"items"`
}

// Teaser builds the teaser block from an already ordered list. The first
// eligible pinned row becomes the hero; the remaining eligible rows are
// capped at TeaserSize.
func Teaser[T models.Item](items []T, rule TeaserRule) TeaserView[T] {
	view := TeaserView[T]{Items: make([]T, 0, TeaserSize)}
	for _, it := range items {
		if !rule.admits(it) {
			continue
		}
		if view.Hero == nil && it.IsPinned() {
			hero := it
			view.Hero = &hero
			continue
		}
		if len(view.Items) < TeaserSize {
			view.Items = append(view.Items, it)
		}
	}
	return view
}

// FilterPosts keeps posts whose type equals tab. TabAll or an empty tab
// keeps everything.
func FilterPosts(posts []models.Post, tab string) []models.Post {
	if isAll(tab) {
		return slices.Clone(posts)
	}
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if string(p.Type) == tab {
			out = append(out, p)
		}
	}
	return out
}

// FilterProjects keeps projects whose category contains tab, ignoring case.
// TabAll or an empty tab keeps everything.
func FilterProjects(projects []models.Project, tab string) []models.Project {
	if isAll(tab) {
		return slices.Clone(projects)
	}
	needle := strings.ToLower(tab)
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out
}

func isAll(tab string) bool {
	return tab == "" || strings.EqualFold(tab, TabAll)
}
