package menu

import "strings"

// Slugify derives a category's stable name from its display translation:
// lowercased, runs of whitespace collapsed to a single underscore, and
// everything that is not a letter, digit or underscore stripped. The
// result is deterministic so the same translation always maps to the
// same slug.
func Slugify(translation string) string {
	var b strings.Builder
	b.Grow(len(translation))

	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(translation)) {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastUnderscore = false
		}
	}

	return strings.TrimRight(b.String(), "_")
}
