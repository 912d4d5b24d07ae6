package imdb

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// stripTags removes markup from an HTML fragment and returns plain text with
// whitespace collapsed. script/style/noscript bodies are skipped entirely.
func stripTags(raw string) string {
	return stripCore(strings.NewReader(raw))
}

func stripCore(r io.Reader) string {
	var b strings.Builder
	z := html.NewTokenizer(r)

	depthSkip := 0

	for {
		switch tt := z.Next(); tt {
		case html.ErrorToken:
			return normalizeWS(b.String())

		case html.StartTagToken:
			name, _ := z.TagName()
			if skipTag(name) {
				depthSkip++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if skipTag(name) && depthSkip > 0 {
				depthSkip--
			}

		case html.TextToken:
			if depthSkip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func skipTag(name []byte) bool {
	switch string(name) {
	case "script", "style", "noscript":
		return true
	default:
		return false
	}
}

func normalizeWS(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
