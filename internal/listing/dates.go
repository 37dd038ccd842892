// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listing

import (
	"strings"
	"time"
)

// DateKind tags how a free-text date was understood.
type DateKind int

const (
	// DateUnknown means the text could not be parsed. It sorts oldest.
	DateUnknown DateKind = iota
	// DateParsed means At holds a calendar date.
	DateParsed
	// DateNow means the range is still open ("Present").
	DateNow
)

// EndDate is the derived sort key of a free-text date such as
// "Jun 2022 – Present". It is computed once per row and compared with
// CompareEndDates.
type EndDate struct {
	Kind DateKind
	At   time.Time
}

// dateLayouts are the calendar formats accepted for display dates, tried in
// order. Values without a day or month resolve to the first of the period.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan. 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
	"Jan. 2006",
	"2006-01",
	"2006",
}

// dashes separate the two ends of a date range.
const dashes = "-–—"

// ParseDate is the generic date parser used for post ordering. It does not
// split ranges.
func ParseDate(s string) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseEndDate extracts the end of a free-text date range. A string that is
// itself a date (e.g. "2024-01-15") is used whole; otherwise the text after
// the last dash is taken, "present" in any case maps to DateNow, and anything
// that still fails to parse is DateUnknown.
func ParseEndDate(s string) EndDate {
	if t, ok := ParseDate(s); ok {
		return EndDate{Kind: DateParsed, At: t}
	}

	tail := strings.TrimSpace(rangeEnd(s))

	if strings.EqualFold(tail, "present") {
		return EndDate{Kind: DateNow}
	}
	if t, ok := ParseDate(tail); ok {
		return EndDate{Kind: DateParsed, At: t}
	}
	return EndDate{Kind: DateUnknown}
}

// rangeEnd returns the text after the last dash. A dash surrounded by spaces
// wins over a bare one so that "2022-06 - 2023-01" splits between the dates.
func rangeEnd(s string) string {
	for _, d := range dashes {
		sep := " " + string(d) + " "
		if i := strings.LastIndex(s, sep); i >= 0 {
			return s[i+len(sep):]
		}
	}
	if i := strings.LastIndexAny(s, dashes); i >= 0 {
		return strings.TrimLeft(s[i:], dashes)
	}
	return s
}

// CompareEndDates orders a before b when a is more recent: DateNow first,
// then parsed dates newest first, then DateUnknown. It returns a negative
// number, zero or a positive number in the manner of cmp.Compare.
func CompareEndDates(a, b EndDate) int {
	if a.Kind != b.Kind {
		// Higher kinds are more recent.
		return int(b.Kind) - int(a.Kind)
	}
	if a.Kind == DateParsed {
		return b.At.Compare(a.At)
	}
	return 0
}
