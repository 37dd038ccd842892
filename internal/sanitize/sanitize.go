// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sanitize cleans HTML produced by the rich-text editor before it is
// stored, and reduces HTML to plain text for word counts and previews.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ugc allows the formatting, links and images an editor produces.
	ugc = func() *bluemonday.Policy {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").OnElements("pre", "code", "span")
		return p
	}()
	strict = bluemonday.StrictPolicy()
)

// HTML returns content safe to render verbatim: scripts, event handlers and
// unsafe URLs are removed.
func HTML(s string) string {
	return ugc.Sanitize(s)
}

// plainText strips every tag and decodes entities, leaving the readable text.
// Block boundaries become spaces so adjacent paragraphs do not merge.
func plainText(s string) string {
	s = strings.NewReplacer("<", " <", ">", "> ").Replace(s)
	return html.UnescapeString(strict.Sanitize(s))
}

// Words counts whitespace-separated words in the text of s.
func Words(s string) int {
	return len(strings.Fields(plainText(s)))
}
