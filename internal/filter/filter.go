// Package filter applies per-source keyword rules to candidate records.
package filter

import (
	"strings"

	"jobwatch-engine/internal/config"
	"jobwatch-engine/internal/domain"
)

// Match reports whether a candidate record passes the source's keyword
// rules. Titles are matched by case-insensitive substring. An empty include
// list passes everything; an exclude hit drops the record unconditionally,
// even when an include keyword also matched.
func Match(src config.Source, rec domain.JobRecord) bool {
	title := strings.ToLower(rec.Title)

	if len(src.Keywords) > 0 {
		matched := false
		for _, kw := range src.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if strings.Contains(title, kw) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, kw := range src.ExcludeKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(title, kw) {
			return false
		}
	}

	return true
}
