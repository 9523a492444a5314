package extract

import (
	"regexp"
	"strings"
)

// plausibleThreshold is the minimum Plausibility score the generic extractor
// accepts. Tuned for precision: a job-like URL alone is not enough, it takes
// a listing-ish container or a multi-word title on top.
const plausibleThreshold = 3

var jobPathPattern = regexp.MustCompile(
	`/jobs?/|/careers?/|/positions?/|/openings?/|/vacancies?/|/opportunities?/|/job-|/career-|/apply\b|jobid=|job_id=|position_id=`)

// navPhrases are link texts that are navigation chrome, never job titles.
var navPhrases = map[string]bool{
	"apply":          true,
	"apply now":      true,
	"learn more":     true,
	"read more":      true,
	"view all":       true,
	"see all":        true,
	"view all jobs":  true,
	"back":           true,
	"next":           true,
	"previous":       true,
	"home":           true,
	"about":          true,
	"about us":       true,
	"contact":        true,
	"contact us":     true,
	"login":          true,
	"log in":         true,
	"sign in":        true,
	"sign up":        true,
	"privacy policy": true,
	"terms":          true,
	"blog":           true,
	"careers":        true,
	"jobs":           true,
	"open positions": true,
}

var listingHints = []string{
	"job", "career", "opening", "position", "vacancy", "posting",
}

var chromeHints = []string{
	"nav", "footer", "header", "menu", "breadcrumb", "pagination", "sidebar",
}

// Plausibility scores how likely an anchor is a link to an individual job
// posting. title is the cleaned link text, href the absolute link target,
// container a lowercase blob of ancestor element names/classes/ids. Pure so
// the heuristic can be unit-tested and tuned on its own.
func Plausibility(title, href, container string) int {
	t := strings.ToLower(strings.TrimSpace(title))
	if len(t) < 3 || len(t) > 120 {
		return -100
	}
	if navPhrases[t] {
		return -100
	}

	score := 0

	if jobPathPattern.MatchString(strings.ToLower(href)) {
		score += 2
	}

	for _, h := range listingHints {
		if strings.Contains(container, h) {
			score += 2
			break
		}
	}
	for _, h := range chromeHints {
		if strings.Contains(container, h) {
			score -= 3
			break
		}
	}

	if strings.Count(t, " ") >= 1 {
		score++
	}

	return score
}
