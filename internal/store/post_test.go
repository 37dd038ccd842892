// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/models"
)

func testID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func TestPostStoreUpsertAndGet(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	ctx := context.Background()

	id := testID("test-post")
	t.Cleanup(func() { cleanRows(t, db, "posts", id) })

	created, err := s.Upsert(ctx, &models.Post{
		ID:       id,
		Type:     models.PostTypeBlog,
		Title:    "First",
		Content:  "<p>hello</p>",
		ReadTime: "1 min read",
		Date:     "Jan 2025",
		Status:   models.StatusDraft,
	})
	require.NoError(t, err)
	assert.Equal(t, "First", created.Title)
	assert.Equal(t, "1 min read", created.ReadTime)
	assert.False(t, created.CreatedAt.IsZero())

	// Second upsert with the same id updates in place.
	_, err = s.Upsert(ctx, &models.Post{
		ID:     id,
		Type:   models.PostTypeBlog,
		Title:  "Second",
		Status: models.StatusPublished,
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Title)
	assert.Equal(t, models.StatusPublished, got.Status)
}

func TestPostStoreGetNotFound(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	_, err := s.Get(context.Background(), "does-not-exist-"+uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostStoreListFilters(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	ctx := context.Background()

	draft := testID("test-list-draft")
	vlog := testID("test-list-vlog")
	t.Cleanup(func() { cleanRows(t, db, "posts", draft, vlog) })

	_, err := s.Upsert(ctx, &models.Post{ID: draft, Type: models.PostTypeBlog, Status: models.StatusDraft})
	require.NoError(t, err)
	_, err = s.Upsert(ctx, &models.Post{ID: vlog, Type: models.PostTypeVlog, Status: models.StatusPublished})
	require.NoError(t, err)

	published, err := s.List(ctx, PostFilter{Status: models.StatusPublished})
	require.NoError(t, err)
	for _, p := range published {
		assert.NotEqual(t, draft, p.ID, "draft returned by published listing")
		assert.Equal(t, models.StatusPublished, p.Status)
	}

	vlogs, err := s.List(ctx, PostFilter{Type: models.PostTypeVlog})
	require.NoError(t, err)
	found := false
	for _, p := range vlogs {
		assert.Equal(t, models.PostTypeVlog, p.Type)
		found = found || p.ID == vlog
	}
	assert.True(t, found)
}

func TestPostStorePinIsExclusive(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	ctx := context.Background()

	a, b := testID("test-pin-a"), testID("test-pin-b")
	t.Cleanup(func() { cleanRows(t, db, "posts", a, b) })

	for _, id := range []string{a, b} {
		_, err := s.Upsert(ctx, &models.Post{ID: id, Type: models.PostTypeBlog, Status: models.StatusPublished})
		require.NoError(t, err)
	}

	require.NoError(t, s.Pin(ctx, a))
	require.NoError(t, s.Pin(ctx, b))

	pa, err := s.Get(ctx, a)
	require.NoError(t, err)
	pb, err := s.Get(ctx, b)
	require.NoError(t, err)
	assert.False(t, pa.Pinned)
	assert.True(t, pb.Pinned)

	// Upsert leaves the pin alone.
	_, err = s.Upsert(ctx, &models.Post{ID: b, Type: models.PostTypeBlog, Title: "edited", Status: models.StatusPublished})
	require.NoError(t, err)
	pb, err = s.Get(ctx, b)
	require.NoError(t, err)
	assert.True(t, pb.Pinned)

	require.NoError(t, s.Unpin(ctx, b))
	pb, err = s.Get(ctx, b)
	require.NoError(t, err)
	assert.False(t, pb.Pinned)
}

func TestPostStorePinMissingKeepsExistingPin(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	ctx := context.Background()

	a := testID("test-pin-keep")
	t.Cleanup(func() { cleanRows(t, db, "posts", a) })

	_, err := s.Upsert(ctx, &models.Post{ID: a, Type: models.PostTypeBlog, Status: models.StatusPublished})
	require.NoError(t, err)
	require.NoError(t, s.Pin(ctx, a))

	err = s.Pin(ctx, "missing-"+uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	// The failed pin rolled back, so a is still pinned.
	pa, err := s.Get(ctx, a)
	require.NoError(t, err)
	assert.True(t, pa.Pinned)
}

func TestPostStoreFeatureAndDelete(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	ctx := context.Background()

	id := testID("test-feature")
	t.Cleanup(func() { cleanRows(t, db, "posts", id) })

	_, err := s.Upsert(ctx, &models.Post{ID: id, Type: models.PostTypeBlog, Status: models.StatusDraft})
	require.NoError(t, err)

	require.NoError(t, s.SetFeatured(ctx, id, true))
	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Featured)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)
	assert.ErrorIs(t, s.SetFeatured(ctx, id, false), ErrNotFound)
}
