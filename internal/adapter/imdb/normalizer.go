package imdb

import (
	"regexp"
	"strings"
)

// titleURLPattern matches the prefix of an IMDb title-detail page. Anything
// after the numeric id (query string, trailing path) is ignored.
var titleURLPattern = regexp.MustCompile(`(?i)^(https?://(www\.)?imdb\.com/title/tt\d+)`)

// NormalizeURL reports whether raw points at an IMDb title page and, if so,
// returns the canonical form: the matched prefix with exactly one trailing
// slash. Pure function, no network access.
func NormalizeURL(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	match := titleURLPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return "", false
	}
	return match[1] + "/", true
}

// IsValidURL reports whether raw normalizes to a canonical title-page URL.
func IsValidURL(raw string) bool {
	_, ok := NormalizeURL(raw)
	return ok
}
