// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/imaging"
)

type fakeUploader struct {
	name        string
	contentType string
	data        []byte
	err         error
}

func (f *fakeUploader) Upload(_ context.Context, filename, contentType string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.name, f.contentType, f.data = filename, contentType, data
	return "https://cdn.example.com/media/" + filename, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x), A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadRequest(t *testing.T, filename string, data []byte, kind string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if kind != "" {
		require.NoError(t, mw.WriteField("kind", kind))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadWithoutStorage(t *testing.T) {
	h := NewMedia(nil)
	rr := serve(h.Upload, uploadRequest(t, "a.png", pngBytes(t, 4, 4), ""))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestUploadCoverIsDownscaled(t *testing.T) {
	store := &fakeUploader{}
	h := NewMedia(store)

	rr := serve(h.Upload, uploadRequest(t, "wide.png", pngBytes(t, 2400, 10), ""))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp uploadResponse
	decodeBody(t, rr, &resp)
	assert.True(t, resp.Resized)
	assert.Equal(t, imaging.MaxCoverWidth, resp.Width)
	assert.Equal(t, "image/png", resp.ContentType)
	assert.Equal(t, "https://cdn.example.com/media/wide.png", resp.URL)

	cfg, err := png.DecodeConfig(bytes.NewReader(store.data))
	require.NoError(t, err)
	assert.Equal(t, imaging.MaxCoverWidth, cfg.Width)
}

func TestUploadInlineIsStoredAsIs(t *testing.T) {
	store := &fakeUploader{}
	h := NewMedia(store)
	data := pngBytes(t, 2400, 10)

	rr := serve(h.Upload, uploadRequest(t, "inline.png", data, "inline"))
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp uploadResponse
	decodeBody(t, rr, &resp)
	assert.False(t, resp.Resized)
	assert.Equal(t, data, store.data)
}

func TestUploadAcceptsSVGByExtension(t *testing.T) {
	store := &fakeUploader{}
	h := NewMedia(store)
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`)

	rr := serve(h.Upload, uploadRequest(t, "logo.svg", svg, ""))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "image/svg+xml", store.contentType)
}

func TestUploadRejections(t *testing.T) {
	h := NewMedia(&fakeUploader{})

	rr := serve(h.Upload, uploadRequest(t, "notes.txt", []byte("plain text"), ""))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(h.Upload, uploadRequest(t, "a.png", pngBytes(t, 4, 4), "banner"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/media", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rr = serve(h.Upload, req)
	assert.GreaterOrEqual(t, rr.Code, 400)
}

func TestUploadStorageFailure(t *testing.T) {
	h := NewMedia(&fakeUploader{err: errBoom})

	rr := serve(h.Upload, uploadRequest(t, "a.png", pngBytes(t, 4, 4), ""))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
