package extract

import (
	"encoding/json"
	"iter"
	"strings"

	"jobwatch-engine/internal/domain"
)

// ashbyExtractor handles Ashby boards. Hosted boards
// (jobs.ashbyhq.com/<org>) ship their listings inside a window.__appData
// blob; the posting API (api.ashbyhq.com/posting-api/job-board/<org>)
// returns a jobs array. Both carry the same posting shape.
type ashbyExtractor struct{}

func (x *ashbyExtractor) Name() string { return "ashby" }

type ashbyPosting struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Location     string `json:"location"`
	LocationName string `json:"locationName"`
	JobURL       string `json:"jobUrl"`
	IsListed     *bool  `json:"isListed"`
}

func (x *ashbyExtractor) Sniff(d *Document) bool {
	_, ok := decodeAshbyPostings(d.Body)
	return ok
}

func (x *ashbyExtractor) Extract(d *Document, sourceName string) iter.Seq[domain.JobRecord] {
	return func(yield func(domain.JobRecord) bool) {
		postings, ok := decodeAshbyPostings(d.Body)
		if !ok {
			return
		}
		for _, p := range postings {
			if p.IsListed != nil && !*p.IsListed {
				continue
			}
			title := CleanText(p.Title)
			if title == "" {
				continue
			}

			u := strings.TrimSpace(p.JobURL)
			if u == "" && p.ID != "" {
				// Hosted boards link postings at <board>/<id>.
				u = absoluteURL(d, strings.TrimRight(d.PageURL.Path, "/")+"/"+p.ID)
			}

			loc := p.Location
			if loc == "" {
				loc = p.LocationName
			}

			if !yield(domain.JobRecord{
				Title:      title,
				URL:        u,
				Location:   NormalizeLocation(loc),
				SourceName: sourceName,
			}) {
				return
			}
		}
	}
}

func decodeAshbyPostings(body string) ([]ashbyPosting, bool) {
	for _, key := range []string{"jobPostings", "jobs"} {
		arr, ok := arrayAfterKey(body, key)
		if !ok {
			continue
		}
		var postings []ashbyPosting
		if err := json.Unmarshal([]byte(arr), &postings); err != nil {
			continue
		}
		for _, p := range postings {
			if p.Title != "" {
				return postings, true
			}
		}
	}
	return nil, false
}
