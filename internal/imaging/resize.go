// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging downsizes uploaded cover images before they are stored.
// Images already within bounds, and formats the decoder does not know, are
// passed through untouched.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxCoverWidth is the widest cover image kept as uploaded.
	MaxCoverWidth = 1920

	// MaxPixels caps decoded image size. 10000x10000 is ~400 MB in RGBA.
	MaxPixels = 100_000_000
)

// ErrTooManyPixels is returned for images whose decoded size exceeds MaxPixels.
var ErrTooManyPixels = errors.New("imaging: image dimensions too large")

// Result is the outcome of FitWidth.
type Result struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

// formats maps decoder names to encoders and MIME types. WebP has no
// encoder here, so downsized WebP images are stored as JPEG.
var formats = map[string]struct {
	format      imaging.Format
	contentType string
}{
	"jpeg": {imaging.JPEG, "image/jpeg"},
	"png":  {imaging.PNG, "image/png"},
	"gif":  {imaging.GIF, "image/gif"},
	"webp": {imaging.JPEG, "image/jpeg"},
}

// FitWidth scales data down to at most maxWidth pixels wide, keeping the
// aspect ratio and applying EXIF orientation. contentType is returned
// unchanged when the image is left as is.
func FitWidth(data []byte, contentType string, maxWidth int) (*Result, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// Not an image we can decode (e.g. SVG); store as uploaded.
		return &Result{Data: data, ContentType: contentType}, nil
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, ErrTooManyPixels
	}

	f, ok := formats[name]
	if !ok || cfg.Width <= maxWidth {
		return &Result{Data: data, ContentType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, f.format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}

	b := resized.Bounds()
	return &Result{
		Data:        buf.Bytes(),
		ContentType: f.contentType,
		Width:       b.Dx(),
		Height:      b.Dy(),
		Resized:     true,
	}, nil
}
