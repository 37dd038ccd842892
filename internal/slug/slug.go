// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"path"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	// nonAlphanumeric matches runs of anything that isn't a letter or digit.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// extension keeps only simple file extensions.
	extension = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
)

// Generate creates a URL-friendly slug from the given string. Non-ASCII
// letters are transliterated first.
// Example: "Budapeşte'de İlk Haftam!" → "budapestede-ilk-haftam"
func Generate(s string) string {
	result := unidecode.Unidecode(strings.TrimSpace(s))
	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, "'", "")
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Filename makes an uploaded file name safe for use in an object key. The
// extension is kept when it looks like one.
// Example: "My Photo (1).JPG" → "my-photo-1.jpg"
func Filename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := strings.ToLower(path.Ext(name))
	if extension.MatchString(ext) {
		name = name[:len(name)-len(ext)]
	} else {
		ext = ""
	}

	base := Generate(name)
	if base == "" {
		base = "file"
	}
	return base + ext
}
