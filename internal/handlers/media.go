// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"folio/internal/imaging"
	"folio/internal/render"
)

// maxUploadSize is the largest accepted upload (10 MB).
const maxUploadSize = 10 << 20

// allowedMediaTypes are the sniffed types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// Media serves image uploads for covers, screenshots and inline images.
type Media struct {
	storage Uploader
}

// NewMedia creates the upload handler. A nil storage disables uploads.
func NewMedia(storage Uploader) *Media {
	return &Media{storage: storage}
}

type uploadResponse struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Resized     bool   `json:"resized"`
}

// Upload serves POST /api/media with a multipart "file" field and an
// optional kind of "cover" (default, downscaled to imaging.MaxCoverWidth)
// or "inline" (stored as uploaded).
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		render.Error(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		render.Error(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10 MB.")
		return
	}

	kind := r.FormValue("kind")
	if kind == "" {
		kind = "cover"
	}
	if kind != "cover" && kind != "inline" {
		render.Error(w, http.StatusBadRequest, fmt.Sprintf("Unknown upload kind %q.", kind))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Error(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		render.Error(w, http.StatusInternalServerError, "Failed to read file.")
		return
	}

	contentType := detectContentType(data, header.Filename)
	if !allowedMediaTypes[contentType] {
		render.Error(w, http.StatusBadRequest, fmt.Sprintf("File type %q is not allowed.", contentType))
		return
	}

	res := &imaging.Result{Data: data, ContentType: contentType}
	if kind == "cover" {
		res, err = imaging.FitWidth(data, contentType, imaging.MaxCoverWidth)
		if errors.Is(err, imaging.ErrTooManyPixels) {
			render.Error(w, http.StatusBadRequest, "Image dimensions are too large.")
			return
		}
		if err != nil {
			slog.Error("cover resize failed", "error", err, "filename", header.Filename)
			render.Error(w, http.StatusInternalServerError, "Failed to process image.")
			return
		}
	}

	name := header.Filename
	if res.ContentType != contentType {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + extensionFromType(res.ContentType)
	}

	url, err := h.storage.Upload(r.Context(), name, res.ContentType, res.Data)
	if err != nil {
		slog.Error("upload failed", "error", err, "filename", name)
		render.Error(w, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	render.JSON(w, http.StatusCreated, uploadResponse{
		URL:         url,
		ContentType: res.ContentType,
		Width:       res.Width,
		Height:      res.Height,
		Resized:     res.Resized,
	})
}

// detectContentType sniffs data, recognising SVG by extension since it
// sniffs as XML or text.
func detectContentType(data []byte, filename string) string {
	ct := http.DetectContentType(data)
	if strings.HasSuffix(strings.ToLower(filename), ".svg") &&
		(strings.Contains(ct, "xml") || strings.Contains(ct, "text/plain")) {
		return "image/svg+xml"
	}
	return ct
}

// extensionFromType returns a file extension for known image types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}
