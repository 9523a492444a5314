package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A page in the shape the generic extractor is built for: a handful of real
// posting links buried in a sea of navigation chrome.
const genericCareersHTML = `<!doctype html><html><body>
<header class="site-header">
  <nav class="main-nav">
    <a href="/">Home</a>
    <a href="/about">About</a>
    <a href="/products">Products</a>
    <a href="/blog">Blog</a>
    <a href="/careers">Careers</a>
    <a href="/contact">Contact</a>
    <a href="/login">Login</a>
    <a href="/signup">Sign up</a>
  </nav>
</header>
<main>
  <h1>Open roles</h1>
  <div class="job-listings">
    <a href="/jobs/101">Backend Engineer</a>
    <a href="/jobs/102">Senior Backend Engineer</a>
    <a href="/jobs/103">Product Designer</a>
    <a href="/jobs/104">Engineering Manager</a>
    <a href="/jobs/105">Data Scientist</a>
  </div>
</main>
<footer class="site-footer">
  <a href="/privacy">Privacy Policy</a>
  <a href="/terms">Terms</a>
  <a href="/jobs">View all jobs</a>
  <a href="/jobs/archive">Archived engineering jobs</a>
  <a href="/press">Press</a>
  <a href="/investors">Investors</a>
  <a href="/help">Help Center</a>
  <a href="/status">Status</a>
  <a href="/security">Security</a>
  <a href="/sitemap">Sitemap</a>
  <a href="/cookies">Cookie Settings</a>
  <a href="/accessibility">Accessibility</a>
</footer>
</body></html>`

func TestGenericExtractor_PrecisionOverRecall(t *testing.T) {
	d := NewDocument("https://example.com/careers", genericCareersHTML)
	ex := &genericExtractor{}

	recs := collectRecords(t, ex, d, "Example")

	plausible := map[string]bool{
		"Backend Engineer":        true,
		"Senior Backend Engineer": true,
		"Product Designer":        true,
		"Engineering Manager":     true,
		"Data Scientist":          true,
	}
	require.NotEmpty(t, recs, "the listing links must be found")
	for _, rec := range recs {
		assert.True(t, plausible[rec.Title], "navigation leaked into candidates: %q", rec.Title)
	}
}

func TestGenericExtractor_ResolvesAndDedupes(t *testing.T) {
	page := `<html><body><div class="job-list">
		<a href="/jobs/1">Backend Engineer</a>
		<a href="/jobs/1">Backend Engineer</a>
		<a href="#">Skip Link Engineer</a>
		<a href="javascript:void(0)">Popup Engineer</a>
	</div></body></html>`
	d := NewDocument("https://example.com/careers", page)
	ex := &genericExtractor{}

	recs := collectRecords(t, ex, d, "Example")
	require.Len(t, recs, 1)
	assert.Equal(t, "https://example.com/jobs/1", recs[0].URL)
	assert.Equal(t, "Example", recs[0].SourceName)
}
