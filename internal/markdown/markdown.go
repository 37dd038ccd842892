// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown turns contact-form text into the HTML body of the
// notification email. Raw HTML in the input is escaped.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// messages renders visitor-written text. Fenced code keeps inline styles
// because mail clients drop <style> blocks.
var messages = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(highlighting.WithStyle("monokai")),
	),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// ToHTML renders source as an HTML fragment.
func ToHTML(source string) (string, error) {
	var out bytes.Buffer
	if err := messages.Convert([]byte(source), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}
