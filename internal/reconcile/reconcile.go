// Package reconcile decides which extracted postings are genuinely new for
// a source, growing that source's fingerprint set as it goes.
package reconcile

import (
	"jobwatch-engine/internal/domain"

	mapset "github.com/deckarep/golang-set/v2"
)

// Reconcile partitions filtered records against the source's fingerprint
// set. Records whose fingerprint is absent are returned in extraction order
// and added to the set; the rest are dropped. The set only grows, so running
// the same batch twice yields nothing new the second time.
//
// With bootstrap set, every fingerprint is recorded but nothing is reported:
// the first-ever check of a source must not flood notifications with its
// whole existing backlog.
func Reconcile(records []domain.JobRecord, seen mapset.Set[string], bootstrap bool) []domain.JobRecord {
	var fresh []domain.JobRecord
	for _, rec := range records {
		fp := Fingerprint(rec)
		if !seen.Add(fp) {
			continue // already known
		}
		if bootstrap {
			continue
		}
		fresh = append(fresh, rec)
	}
	return fresh
}
