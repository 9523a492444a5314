package reconcile

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"

	"jobwatch-engine/internal/domain"

	"golang.org/x/text/unicode/norm"
)

// Fingerprint derives the stable dedup identity of a record. The posting URL
// is the identity when present and absolute; pages without per-job links
// fall back to a hash of the normalized source|title|location composite so
// the identity survives re-scrapes with incidental whitespace or casing
// changes.
func Fingerprint(rec domain.JobRecord) string {
	if u := strings.TrimSpace(rec.URL); u != "" {
		if parsed, err := url.Parse(u); err == nil && parsed.IsAbs() {
			return u
		}
	}

	composite := normalize(rec.SourceName) + "|" + normalize(rec.Title) + "|" + normalize(rec.Location)
	sum := md5.Sum([]byte(composite))
	return hex.EncodeToString(sum[:])
}

// normalize case-folds, collapses whitespace, and applies NFKC so
// typographic variants of the same text hash identically.
func normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
