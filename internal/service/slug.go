package service

import "strings"

// TitleToSlug derives a URL-safe slug from a poll title: lowercase
// alphanumerics with single hyphens between words. Deterministic and
// idempotent, so a slug run through it again is unchanged.
func TitleToSlug(title string) string {
	slug := make([]rune, 0, len(title))
	for _, ch := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			slug = append(slug, ch)
		default:
			if len(slug) > 0 && slug[len(slug)-1] != '-' {
				slug = append(slug, '-')
			}
		}
	}
	text := strings.Trim(string(slug), "-")
	if text == "" {
		return "poll"
	}
	return text
}
