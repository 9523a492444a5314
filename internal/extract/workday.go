package extract

import (
	"encoding/json"
	"iter"
	"strings"

	"jobwatch-engine/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// workdayExtractor handles Workday career sites (<tenant>.myworkdayjobs.com).
// Server-rendered pages expose jobTitle anchors; otherwise the cxs API
// payload (a jobPostings array) is often embedded in the page and is decoded
// directly.
type workdayExtractor struct{}

func (x *workdayExtractor) Name() string { return "workday" }

type wdPosting struct {
	Title         string `json:"title"`
	ExternalPath  string `json:"externalPath"`
	ExternalURL   string `json:"externalUrl"`
	LocationsText string `json:"locationsText"`
	Location      string `json:"location"`
}

func (x *workdayExtractor) Sniff(d *Document) bool {
	if d.HTML.Find("a[data-automation-id='jobTitle']").Length() > 0 {
		return true
	}
	_, ok := decodeWorkdayPostings(d.Body)
	return ok
}

func (x *workdayExtractor) Extract(d *Document, sourceName string) iter.Seq[domain.JobRecord] {
	return func(yield func(domain.JobRecord) bool) {
		anchors := d.HTML.Find("a[data-automation-id='jobTitle']")
		if anchors.Length() > 0 {
			anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
				title := CleanText(a.Text())
				if title == "" {
					return true
				}
				href, _ := a.Attr("href")
				loc := CleanText(a.Closest("li").Find("[data-automation-id='locations']").First().Text())

				return yield(domain.JobRecord{
					Title:      title,
					URL:        absoluteURL(d, href),
					Location:   NormalizeLocation(loc),
					SourceName: sourceName,
				})
			})
			return
		}

		postings, ok := decodeWorkdayPostings(d.Body)
		if !ok {
			return
		}
		for _, p := range postings {
			title := CleanText(p.Title)
			if title == "" {
				continue
			}
			u := strings.TrimSpace(p.ExternalURL)
			if u == "" {
				u = absoluteURL(d, p.ExternalPath)
			}
			loc := p.LocationsText
			if loc == "" {
				loc = p.Location
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

func decodeWorkdayPostings(body string) ([]wdPosting, bool) {
	arr, ok := arrayAfterKey(body, "jobPostings")
	if !ok {
		return nil, false
	}
	var postings []wdPosting
	if err := json.Unmarshal([]byte(arr), &postings); err != nil {
		return nil, false
	}
	for _, p := range postings {
		if p.Title != "" {
			return postings, true
		}
	}
	return nil, false
}
