// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// Status represents the publishing state of a post or project.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// ParseStatus validates a raw status string. Only "draft" and "published"
// are accepted; anything else is an error.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPublished:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// UnmarshalText applies ParseStatus to decoded JSON and YAML, so a request
// body or seed entry with an unknown status fails to decode.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Kind is the tag of a content item.
type Kind string

const (
	KindPost    Kind = "post"
	KindProject Kind = "project"
)

// Item is implemented by Post and Project. The unexported method seals the
// set so callers can switch on the concrete type exhaustively.
type Item interface {
	Kind() Kind
	ItemID() string
	ItemStatus() Status
	IsFeatured() bool
	IsPinned() bool
	DisplayDate() string

	isItem()
}

// IsPublished returns true if the item is in published status.
func IsPublished(it Item) bool {
	return it.ItemStatus() == StatusPublished
}
