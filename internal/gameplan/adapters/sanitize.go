package adapters

import "strings"

const maxSlugLen = 50

// SanitizeTitle converts a title into a slug safe for filesystem paths:
// lowercase, special characters stripped, whitespace and hyphen runs
// collapsed to single hyphens, truncated to 50 characters breaking at a
// hyphen boundary where possible.
//
//	SanitizeTitle("Fix: Bug in API (Critical!)") == "fix-bug-in-api-critical"
func SanitizeTitle(title string) string {
	title = strings.ToLower(title)

	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '-':
			b.WriteByte('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
		if i := strings.LastIndex(slug, "-"); i > 0 {
			slug = slug[:i]
		}
		slug = strings.TrimRight(slug, "-")
	}
	return slug
}
