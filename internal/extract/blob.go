package extract

import "strings"

// arrayAfterKey finds the first JSON array following `"key":` in raw text
// and returns it verbatim. Used to pull API-shaped payloads that platforms
// render into their pages (workday jobPostings, ashby appData) without
// decoding the entire surrounding blob.
func arrayAfterKey(s, key string) (string, bool) {
	needle := `"` + key + `"`
	from := 0
	for {
		i := strings.Index(s[from:], needle)
		if i < 0 {
			return "", false
		}
		i += from
		j := i + len(needle)
		// skip ws and the colon
		for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
			j++
		}
		if j >= len(s) || s[j] != ':' {
			from = i + len(needle)
			continue
		}
		j++
		for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
			j++
		}
		if j >= len(s) || s[j] != '[' {
			from = i + len(needle)
			continue
		}
		if arr, ok := jsonValueAt(s, j); ok {
			return arr, true
		}
		from = i + len(needle)
	}
}

// jsonValueAt returns the balanced JSON object or array starting at s[i],
// tracking string literals and escapes so braces inside values don't
// confuse the scan.
func jsonValueAt(s string, i int) (string, bool) {
	if i >= len(s) || (s[i] != '{' && s[i] != '[') {
		return "", false
	}
	depth := 0
	inStr := false
	escaped := false
	for j := i; j < len(s); j++ {
		c := s[j]
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[i : j+1], true
			}
		}
	}
	return "", false
}
