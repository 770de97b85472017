package byline

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops combining marks, so that
// "José" folds to "Jose" before slugging.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize converts a display name to its canonical login slug.
//
// Rules:
//  1. Fold accented characters to their base form
//  2. Lowercase
//  3. Replace every run of non-alphanumeric characters with a single dash
//  4. Trim leading and trailing dashes
//
// Two names that normalize to the same login are treated as the same
// author. "Jane Doe" and "jane-doe" collide on purpose; this is the
// deduplication rule, not an accident.
func Normalize(raw string) string {
	folded, _, err := transform.String(stripMarks, raw)
	if err != nil {
		folded = raw
	}

	s := strings.ToLower(folded)
	s = nonAlnumRun.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
