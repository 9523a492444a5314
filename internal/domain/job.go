package domain

// JobRecord is one posting extracted from a career page. Title is always
// non-blank; extractors drop whitespace-only titles. URL is the absolute
// link to the posting when the page provides one, otherwise empty.
type JobRecord struct {
	Title      string
	URL        string
	Location   string
	SourceName string
}
