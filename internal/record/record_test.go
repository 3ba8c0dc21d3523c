package record

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"devevents/internal/model"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "React Summit 2026!", "react-summit-2026"},
		{"extra whitespace", "  Hello   World  ", "hello-world"},
		{"hyphen runs", "Go --- Conf", "go-conf"},
		{"special characters", "Node.js & Friends @ Berlin", "nodejs-friends-berlin"},
		{"already a slug", "jsconf-eu-2026", "jsconf-eu-2026"},
		{"digits only", "2026", "2026"},
		{"nothing usable", "!!!", ""},
		{"unicode stripped", "Café Nights", "caf-nights"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSlug(tt.title)
			require.Equal(t, tt.want, got)
			if got != "" {
				require.True(t, slugShape.MatchString(got), "derived slug %q has bad shape", got)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"unpadded month and day", "2026-3-18", "2026-03-18", false},
		{"already normalized", "2026-03-18", "2026-03-18", false},
		{"slash separated", "2026/03/18", "2026-03-18", false},
		{"long form", "March 18, 2026", "2026-03-18", false},
		{"rfc3339", "2026-03-18T09:30:00Z", "2026-03-18", false},
		{"garbage", "not-a-date", "", true},
		{"month out of range", "2026-13-01", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			// normalization is idempotent
			again, err := NormalizeDate(got)
			require.NoError(t, err)
			require.Equal(t, got, again)
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"single digit hour", "9:05", "09:05", false},
		{"already normalized", "09:05", "09:05", false},
		{"midnight", "0:00", "00:00", false},
		{"last minute", "23:59", "23:59", false},
		{"single digit minutes", "9:5", "", true},
		{"hour out of range", "24:00", "", true},
		{"minutes out of range", "10:60", "", true},
		{"garbage", "noon", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTime(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			again, err := NormalizeTime(got)
			require.NoError(t, err)
			require.Equal(t, got, again)
		})
	}
}

func TestValidSlugParam(t *testing.T) {
	valid := []string{"react-summit-2026", "jsconf", "a", "1-2-3"}
	invalid := []string{"", "Invalid Slug!", "-leading", "trailing-", "double--hyphen", "UPPER"}

	for _, s := range valid {
		require.True(t, ValidSlugParam(s), "expected %q to be valid", s)
	}
	for _, s := range invalid {
		require.False(t, ValidSlugParam(s), "expected %q to be invalid", s)
	}
}

func TestNormalize(t *testing.T) {
	e := &model.Event{
		Title:       "  React Summit 2026!  ",
		Description: " big conf ",
		Overview:    " overview ",
		Image:       "https://img.example/e.png",
		Venue:       " RAI ",
		Location:    " Amsterdam ",
		Date:        "2026-3-18",
		Time:        "9:05",
		Mode:        " Hybrid ",
		Audience:    " developers ",
		Agenda:      []string{" opening keynote "},
		Organizer:   " DevEvents ",
		Tags:        []string{" react "},
	}

	require.NoError(t, Normalize(e))
	require.Equal(t, "React Summit 2026!", e.Title)
	require.Equal(t, "2026-03-18", e.Date)
	require.Equal(t, "09:05", e.Time)
	require.Equal(t, model.ModeHybrid, e.Mode)
	require.Equal(t, "RAI", e.Venue)
	require.Equal(t, []string{"opening keynote"}, e.Agenda)
	require.Equal(t, []string{"react"}, e.Tags)
}

func TestNormalizeRejectsBadDateAndTime(t *testing.T) {
	e := &model.Event{Date: "someday", Time: "10:00"}
	require.ErrorIs(t, Normalize(e), ErrInvalidDate)

	e = &model.Event{Date: "2026-03-18", Time: "9:5"}
	require.ErrorIs(t, Normalize(e), ErrInvalidTime)
}
