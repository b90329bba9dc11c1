package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filename returns the report filename for a subject and date, e.g.
// "fitting_jiri_novak_20260824.md".
func Filename(subject string, date time.Time) string {
	return fmt.Sprintf("fitting_%s_%s.md", Slug(subject), date.Format("20060102"))
}

// Slug converts a subject name into a filename-safe token: diacritics
// stripped, lowercased, runs of other characters collapsed to single
// underscores.
func Slug(name string) string {
	s := removeDiacritics(name)
	s = strings.ToLower(s)

	var b strings.Builder
	lastUnderscore := true
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "subject"
	}
	return out
}

// removeDiacritics removes diacritical marks from a string (e.g., "Jiří" -> "Jiri").
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
