package record

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"devevents/internal/model"
)

var (
	ErrInvalidDate = errors.New("invalid date format")
	ErrInvalidTime = errors.New("invalid time format")

	slugParamRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	slugStripRegex = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaceRunRegex  = regexp.MustCompile(`\s+`)
	hyphenRunRegex = regexp.MustCompile(`-+`)
)

// dateLayouts are the calendar formats accepted on input. Storage format is
// always dateLayouts[0].
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

var timeRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ValidSlugParam reports whether s is safe to use as a lookup slug:
// lowercase alphanumeric groups separated by single hyphens.
func ValidSlugParam(s string) bool {
	return slugParamRegex.MatchString(s)
}

// DeriveSlug builds the base slug for a title: lowercase, strip everything
// outside [a-z0-9\s-], collapse whitespace runs into single hyphens, collapse
// hyphen runs. Returns "" when the title has no usable characters.
func DeriveSlug(title string) string {
	s := strings.ToLower(title)
	s = slugStripRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = spaceRunRegex.ReplaceAllString(s, "-")
	s = hyphenRunRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeDate parses s as a calendar date and rewrites it as YYYY-MM-DD
// (UTC calendar date, no time component). Idempotent for already-normalized
// values.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("%w: %q, use YYYY-MM-DD or a valid date string", ErrInvalidDate, s)
}

// NormalizeTime validates s against 24-hour H:MM / HH:MM and zero-pads the
// hour. Idempotent for already-normalized values.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	m := timeRegex.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q, use HH:MM (24-hour format)", ErrInvalidTime, s)
	}
	hours, minutes := m[1], m[2]
	if len(hours) == 1 {
		hours = "0" + hours
	}
	return hours + ":" + minutes, nil
}

// Normalize rewrites a candidate event in place before any persistence
// attempt: text fields are trimmed, mode is folded to lowercase, date and
// time are rewritten into their canonical forms. A FormatError aborts the
// whole write; the record is never stored half-normalized.
func Normalize(e *model.Event) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Overview = strings.TrimSpace(e.Overview)
	e.Venue = strings.TrimSpace(e.Venue)
	e.Location = strings.TrimSpace(e.Location)
	e.Audience = strings.TrimSpace(e.Audience)
	e.Organizer = strings.TrimSpace(e.Organizer)
	e.Mode = strings.ToLower(strings.TrimSpace(e.Mode))
	for i := range e.Agenda {
		e.Agenda[i] = strings.TrimSpace(e.Agenda[i])
	}
	for i := range e.Tags {
		e.Tags[i] = strings.TrimSpace(e.Tags[i])
	}

	date, err := NormalizeDate(e.Date)
	if err != nil {
		return err
	}
	e.Date = date

	t, err := NormalizeTime(e.Time)
	if err != nil {
		return err
	}
	e.Time = t

	return nil
}
