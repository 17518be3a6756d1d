// Package dateutil provides the date parsing and formatting used by the
// bank statement parsers.
package dateutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layout constants for the formats that matter to the application.
const (
	LayoutISO      = "2006-01-02"
	LayoutUK       = "02/01/2006"
	LayoutUS       = "01/02/2006"
	LayoutDotted   = "02.01.2006"
	LayoutDashed   = "02-01-2006"
	LayoutDateTime = "2006-01-02 15:04:05"
)

// dayFirstLayouts are tried before anything else. UK bank exports write
// ambiguous dates day-first, so 01/03/2024 must parse as 1 March.
var dayFirstLayouts = []string{
	LayoutUK,
	LayoutDashed,
	LayoutDotted,
}

// otherLayouts cover the unambiguous and less common representations.
var otherLayouts = []string{
	LayoutISO,
	LayoutDateTime,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-07:00",
	"2.1.2006",
	"2/1/2006",
	"02 Jan 2006",
	"Jan 02, 2006",
	"2 January 2006",
	"January 2, 2006",
	LayoutUS,
}

var spaceRe = regexp.MustCompile(`\s+`)

// Clean trims a raw date string and collapses repeated whitespace.
func Clean(dateStr string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// Parse attempts to parse a date string, preferring day-first layouts for
// ambiguous dates. Returns an error when no known layout matches.
func Parse(dateStr string) (time.Time, error) {
	cleaned := Clean(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	for _, layout := range otherLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseWith parses using an explicit layout first, falling back to the
// common layouts. Format-specific parsers pass their bank's known layout so
// that detection stays deterministic.
func ParseWith(layout, dateStr string) (time.Time, error) {
	cleaned := Clean(dateStr)
	if t, err := time.Parse(layout, cleaned); err == nil {
		return t, nil
	}
	return Parse(dateStr)
}

// ToISO formats a time as YYYY-MM-DD, the canonical textual form used by
// the rest of the pipeline.
func ToISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LayoutISO)
}

// ParseToISO combines Parse and ToISO for the common case.
func ParseToISO(dateStr string) (string, error) {
	t, err := Parse(dateStr)
	if err != nil {
		return "", err
	}
	return ToISO(t), nil
}
