// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory fakes and request helpers shared by
// the handler tests.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/session"
	"folio/internal/store"
)

var errBoom = errors.New("boom")

// memPosts is an in-memory post store.
type memPosts struct {
	mu      sync.Mutex
	rows    map[string]models.Post
	listErr error
}

func newMemPosts(posts ...models.Post) *memPosts {
	m := &memPosts{rows: map[string]models.Post{}}
	for _, p := range posts {
		m.rows[p.ID] = p
	}
	return m
}

func (m *memPosts) List(_ context.Context, f store.PostFilter) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Post
	for _, p := range m.rows {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memPosts) Get(_ context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (m *memPosts) Upsert(_ context.Context, p *models.Post) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *p
	saved.Pinned = m.rows[p.ID].Pinned
	m.rows[p.ID] = saved
	return &saved, nil
}

func (m *memPosts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memPosts) SetFeatured(_ context.Context, id string, featured bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Featured = featured
	m.rows[id] = p
	return nil
}

func (m *memPosts) Pin(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return store.ErrNotFound
	}
	for k, p := range m.rows {
		p.Pinned = k == id
		m.rows[k] = p
	}
	return nil
}

func (m *memPosts) Unpin(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Pinned = false
	m.rows[id] = p
	return nil
}

func (m *memPosts) pinnedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, p := range m.rows {
		if p.Pinned {
			ids = append(ids, id)
		}
	}
	return ids
}

// memProjects is an in-memory project store.
type memProjects struct {
	mu      sync.Mutex
	rows    map[string]models.Project
	listErr error
}

func newMemProjects(projects ...models.Project) *memProjects {
	m := &memProjects{rows: map[string]models.Project{}}
	for _, p := range projects {
		m.rows[p.ID] = p
	}
	return m
}

func (m *memProjects) List(_ context.Context, f store.ProjectFilter) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Project
	for _, p := range m.rows {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProjects) Get(_ context.Context, id string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (m *memProjects) Upsert(_ context.Context, p *models.Project) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *p
	saved.Pinned = m.rows[p.ID].Pinned
	m.rows[p.ID] = saved
	return &saved, nil
}

func (m *memProjects) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memProjects) SetFeatured(_ context.Context, id string, featured bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Featured = featured
	m.rows[id] = p
	return nil
}

func (m *memProjects) Pin(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return store.ErrNotFound
	}
	for k, p := range m.rows {
		p.Pinned = k == id
		m.rows[k] = p
	}
	return nil
}

func (m *memProjects) Unpin(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Pinned = false
	m.rows[id] = p
	return nil
}

// adminSession is a completed owner session.
func adminSession() *session.Data {
	return &session.Data{UserID: uuid.New(), Email: "owner@folio.local", DisplayName: "Owner", TwoFADone: true}
}

// asAdmin attaches an admin Viewer to req.
func asAdmin(req *http.Request) *http.Request {
	return asViewer(req, adminSession())
}

func asViewer(req *http.Request, s *session.Data) *http.Request {
	return req.WithContext(middleware.WithViewer(req.Context(), middleware.Viewer{Session: s}))
}

// withID sets the chi {id} URL parameter on req.
func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// newRequest builds a request with an optional JSON body.
func newRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// serve runs h and returns the recorder.
func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

// decodeBody unmarshals the response body into v.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), "body: %s", rr.Body.String())
}
