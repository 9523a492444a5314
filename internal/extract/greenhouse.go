package extract

import (
	"iter"

	"jobwatch-engine/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// greenhouseExtractor handles Greenhouse boards. Classic boards render
// div.opening rows; the newer embedded boards render tr.job-post tables.
type greenhouseExtractor struct{}

func (x *greenhouseExtractor) Name() string { return "greenhouse" }

func (x *greenhouseExtractor) Sniff(d *Document) bool {
	return d.HTML.Find("div.opening a").Length() > 0 ||
		d.HTML.Find("tr.job-post a").Length() > 0
}

func (x *greenhouseExtractor) Extract(d *Document, sourceName string) iter.Seq[domain.JobRecord] {
	return func(yield func(domain.JobRecord) bool) {
		stopped := false

		d.HTML.Find("div.opening").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			a := sel.Find("a").First()
			title := CleanText(a.Text())
			if title == "" {
				return true
			}
			href, _ := a.Attr("href")
			loc := CleanText(sel.Find("span.location").First().Text())

			if !yield(domain.JobRecord{
				Title:      title,
				URL:        absoluteURL(d, href),
				Location:   NormalizeLocation(loc),
				SourceName: sourceName,
			}) {
				stopped = true
				return false
			}
			return true
		})
		if stopped {
			return
		}

		d.HTML.Find("tr.job-post").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			a := sel.Find("a").First()
			title := CleanText(a.Find("p").First().Text())
			if title == "" {
				title = CleanText(a.Text())
			}
			if title == "" {
				return true
			}
			href, _ := a.Attr("href")
			loc := CleanText(a.Find("p.body--metadata").First().Text())

			return yield(domain.JobRecord{
				Title:      title,
				URL:        absoluteURL(d, href),
				Location:   NormalizeLocation(loc),
				SourceName: sourceName,
			})
		})
	}
}
