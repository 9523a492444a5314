package extract

import (
	"encoding/json"
	"iter"
	"strings"

	"jobwatch-engine/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// leverExtractor handles Lever boards in both shapes: the hosted HTML board
// (jobs.lever.co/<slug>) and the postings API payload
// (api.lever.co/v0/postings/<slug>?mode=json) when a source points straight
// at it.
type leverExtractor struct{}

func (x *leverExtractor) Name() string { return "lever" }

type leverPosting struct {
	ID         string `json:"id"`
	Text       string `json:"text"` // title
	HostedURL  string `json:"hostedUrl"`
	Categories struct {
		Location string `json:"location"`
	} `json:"categories"`
}

func (x *leverExtractor) Sniff(d *Document) bool {
	if _, ok := decodeLeverPostings(d.Body); ok {
		return true
	}
	return d.HTML.Find("div.posting a.posting-title").Length() > 0
}

func (x *leverExtractor) Extract(d *Document, sourceName string) iter.Seq[domain.JobRecord] {
	return func(yield func(domain.JobRecord) bool) {
		if postings, ok := decodeLeverPostings(d.Body); ok {
			for _, p := range postings {
				title := CleanText(p.Text)
				if title == "" || p.HostedURL == "" {
					continue
				}
				rec := domain.JobRecord{
					Title:      title,
					URL:        strings.TrimSpace(p.HostedURL),
					Location:   NormalizeLocation(p.Categories.Location),
					SourceName: sourceName,
				}
				if !yield(rec) {
					return
				}
			}
			return
		}

		d.HTML.Find("div.posting").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			a := sel.Find("a.posting-title").First()
			href, _ := a.Attr("href")
			u := absoluteURL(d, href)

			title := CleanText(sel.Find("[data-qa='posting-name']").First().Text())
			if title == "" {
				title = CleanText(a.Text())
			}
			if title == "" {
				return true // skip this posting, keep going
			}

			loc := CleanText(sel.Find(".posting-categories .sort-by-location").First().Text())
			if loc == "" {
				loc = CleanText(sel.Find(".location").First().Text())
			}

			return yield(domain.JobRecord{
				Title:      title,
				URL:        u,
				Location:   NormalizeLocation(loc),
				SourceName: sourceName,
			})
		})
	}
}

func decodeLeverPostings(body string) ([]leverPosting, bool) {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	var postings []leverPosting
	if err := json.Unmarshal([]byte(trimmed), &postings); err != nil {
		return nil, false
	}
	// Require at least one entry that looks like a Lever posting, not just
	// any JSON array.
	for _, p := range postings {
		if p.HostedURL != "" && p.Text != "" {
			return postings, true
		}
	}
	return nil, false
}
