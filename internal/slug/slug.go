// Package slug derives URL-safe identifiers from human-entered names.
//
// Make normalizes a name into lower-kebab ASCII. Resolve layers a
// uniqueness probe on top: when the base token is taken, -1, -2, ... are
// appended until a free token is found. Slugs are assigned once; a record
// that already carries a slug keeps it on later saves.
package slug

import (
	"strconv"
	"strings"
)

// Make converts a name into runs of [a-z0-9] joined by single hyphens.
// Returns "" when the name contains no usable characters.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// Resolve returns a slug for name that taken reports as unused.
//
// When the normalized name is empty the base becomes "<kind>-<seed>";
// callers pass the record id as seed once it is persisted, or "new" before
// that. taken must exclude the record's own current slug so re-saving an
// unchanged name is a no-op. The probe always terminates: the set of taken
// slugs is finite and the suffix space is not.
func Resolve(name, kind, seed string, taken func(string) bool) string {
	base := Make(name)
	if base == "" {
		if seed == "" {
			seed = "new"
		}
		base = kind + "-" + seed
	}

	s := base
	for n := 1; taken(s); n++ {
		s = base + "-" + strconv.Itoa(n)
	}
	return s
}
