// Package extract turns fetched career-page documents into job records.
//
// A classifier binds each document to one strategy extractor: one per known
// ATS platform family (lever, greenhouse, workday, ashby) plus a generic
// heuristic fallback. Extractors never fail: malformed entries are skipped
// and at worst the sequence is empty.
package extract

import (
	"iter"
	"net/url"
	"strings"

	"jobwatch-engine/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// Document is one fetched page, parsed once and handed to a single
// extractor.
type Document struct {
	PageURL *url.URL
	Body    string
	HTML    *goquery.Document
}

// NewDocument parses the raw markup. The HTML parser is lenient, so even
// JSON bodies and broken markup produce a usable (possibly empty) tree.
func NewDocument(pageURL, body string) *Document {
	u, err := url.Parse(pageURL)
	if err != nil {
		u = &url.URL{}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return &Document{PageURL: u, Body: body, HTML: doc}
}

// Extractor is one extraction strategy. Extract yields candidate records in
// page order as a finite, non-restartable sequence; entries it cannot parse
// are dropped, never surfaced as errors.
type Extractor interface {
	Name() string
	// Sniff reports whether the document shows this platform's listing
	// structure.
	Sniff(d *Document) bool
	Extract(d *Document, sourceName string) iter.Seq[domain.JobRecord]
}

var platforms = []struct {
	hostHint string
	ex       Extractor
}{
	{"lever.co", &leverExtractor{}},
	{"greenhouse.io", &greenhouseExtractor{}},
	{"myworkdayjobs.com", &workdayExtractor{}},
	{"ashbyhq.com", &ashbyExtractor{}},
}

// Classify picks the extractor for a document. The URL is matched against
// known platform hostnames; a hit only sticks when the markup also shows
// that platform's listing structure. Everything else gets the generic
// extractor, so classification is total.
func Classify(d *Document) Extractor {
	target := strings.ToLower(d.PageURL.String())
	for _, p := range platforms {
		if strings.Contains(target, p.hostHint) && p.ex.Sniff(d) {
			return p.ex
		}
	}
	return &genericExtractor{}
}

// absoluteURL resolves href against the page URL. Returns "" for anchors
// that cannot identify a posting (fragments, javascript pseudo-links).
func absoluteURL(d *Document, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := d.PageURL.ResolveReference(ref)
	if !abs.IsAbs() {
		return ""
	}
	abs.Fragment = ""
	return abs.String()
}
