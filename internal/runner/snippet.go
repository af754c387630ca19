package runner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxSnippetLen = 256

// snippet condenses a response body for logs and events. HTML error pages,
// as served by proxies in front of the service, are reduced to their title
// and visible text.
func snippet(body string) string {
	s := strings.TrimSpace(body)
	if s == "" {
		return "<empty>"
	}
	if looksLikeHTML(s) {
		if text := htmlSummary(s); text != "" {
			s = text
		}
	}
	return truncate(s, maxSnippetLen)
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s[:min(len(s), 64)])
	return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
}

func htmlSummary(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")

	switch {
	case title != "" && text != "" && !strings.HasPrefix(text, title):
		return title + ": " + text
	case text != "":
		return text
	default:
		return title
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
