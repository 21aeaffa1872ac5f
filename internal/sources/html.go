package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractTitle returns the page <title>, or empty when absent.
func extractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractMetaDescription returns the meta description content, or empty when absent.
func extractMetaDescription(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	content, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return strings.TrimSpace(content)
}
