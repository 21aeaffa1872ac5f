package sources

import (
	"context"
	"log"

	"github.com/jonathan/talent-profiles/internal/fetch"
	"github.com/jonathan/talent-profiles/internal/types"
)

// maxWebsiteImages caps how many image URLs are collected from one site.
const maxWebsiteImages = 10

// RawWebsiteData is the shaped payload of a portfolio website.
type RawWebsiteData struct {
	URL         string
	Title       string
	Description string
	Text        string
	Images      []string
}

// Kind implements RawData.
func (RawWebsiteData) Kind() types.SourceKind { return types.SourceWebsite }

// WebsiteAdapter fetches and shapes portfolio-website content.
// It is the only adapter that performs real network I/O.
type WebsiteAdapter struct {
	// UseBrowser enables a headless-browser fallback for JS-rendered sites.
	UseBrowser bool
	Verbose    bool
}

// Kind implements Adapter.
func (*WebsiteAdapter) Kind() types.SourceKind { return types.SourceWebsite }

// Fetch retrieves the page at the identifier URL and extracts its text and
// image URLs.
func (a *WebsiteAdapter) Fetch(ctx context.Context, identifier string) (RawData, error) {
	result, err := fetch.URL(ctx, identifier, nil)
	if err != nil {
		return nil, err
	}

	html := result.HTML

	text, err := fetch.ExtractMainText(html)
	if err != nil {
		return nil, err
	}

	// JS-heavy portfolio sites render nothing server-side; retry in a browser.
	if a.UseBrowser && fetch.ShouldUseBrowser(text) {
		rendered, berr := fetch.BrowserSimple(ctx, identifier, a.Verbose)
		if berr != nil {
			log.Printf("[website] browser fallback failed for %s: %v", identifier, berr)
		} else {
			html = rendered
			if t, terr := fetch.ExtractMainText(html); terr == nil {
				text = t
			}
		}
	}

	images, err := fetch.ExtractImageURLs(html, identifier, maxWebsiteImages)
	if err != nil {
		return nil, err
	}

	return RawWebsiteData{
		URL:         identifier,
		Title:       extractTitle(html),
		Description: extractMetaDescription(html),
		Text:        text,
		Images:      images,
	}, nil
}
