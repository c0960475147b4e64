package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleToSlug(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "simple title",
			title:    "Team Offsite Location",
			expected: "team-offsite-location",
		},
		{
			name:     "punctuation collapses to single hyphens",
			title:    "What's next? (Q3 roadmap!)",
			expected: "what-s-next-q3-roadmap",
		},
		{
			name:     "leading and trailing separators trimmed",
			title:    "  --Best Lunch Spot--  ",
			expected: "best-lunch-spot",
		},
		{
			name:     "digits preserved",
			title:    "2026 Hackathon Theme",
			expected: "2026-hackathon-theme",
		},
		{
			name:     "no usable characters falls back",
			title:    "???",
			expected: "poll",
		},
		{
			name:     "empty title falls back",
			title:    "",
			expected: "poll",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TitleToSlug(tt.title))
		})
	}
}

func TestTitleToSlug_Idempotent(t *testing.T) {
	titles := []string{
		"Team Offsite Location",
		"What's next? (Q3 roadmap!)",
		"already-a-slug",
	}
	for _, title := range titles {
		once := TitleToSlug(title)
		assert.Equal(t, once, TitleToSlug(once), "slug of %q should be stable", title)
	}
}
