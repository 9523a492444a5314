package extract

import (
	"iter"
	"strings"

	"jobwatch-engine/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// genericExtractor is the fallback for pages with no recognized platform
// structure. It walks every anchor and keeps only those whose link text,
// href, and surrounding markup score as plausible job postings. Ambiguous
// anchors are dropped: a spurious notification is worse than a posting that
// gets picked up on a later cycle.
type genericExtractor struct{}

func (x *genericExtractor) Name() string { return "generic" }

func (x *genericExtractor) Sniff(d *Document) bool { return true }

func (x *genericExtractor) Extract(d *Document, sourceName string) iter.Seq[domain.JobRecord] {
	return func(yield func(domain.JobRecord) bool) {
		seen := map[string]bool{}

		d.HTML.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			u := absoluteURL(d, href)
			if u == "" || seen[u] {
				return true
			}

			title := CleanText(a.Text())
			if title == "" {
				title, _ = a.Attr("title")
				title = CleanText(title)
			}
			if title == "" {
				label, _ := a.Attr("aria-label")
				title = CleanText(label)
			}

			if Plausibility(title, u, containerHint(a)) < plausibleThreshold {
				return true
			}
			seen[u] = true

			return yield(domain.JobRecord{
				Title:      title,
				URL:        u,
				SourceName: sourceName,
			})
		})
	}
}

// containerHint flattens an anchor's ancestry (element names, classes, ids)
// into one lowercase string for the scorer.
func containerHint(a *goquery.Selection) string {
	var parts []string
	a.Parents().Each(func(_ int, p *goquery.Selection) {
		if len(p.Nodes) == 0 {
			return
		}
		parts = append(parts, p.Nodes[0].Data)
		if c, ok := p.Attr("class"); ok {
			parts = append(parts, c)
		}
		if id, ok := p.Attr("id"); ok {
			parts = append(parts, id)
		}
	})
	return strings.ToLower(strings.Join(parts, " "))
}
