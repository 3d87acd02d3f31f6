package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aleister1102/kkupeople/internal/urlhandler"
)

// extractEmail prefers an explicit mailto link, then falls back to the
// first institutional-domain address anywhere in the visible text.
func (e *Extractor) extractEmail(doc *goquery.Document) string {
	anchor := doc.Find(`a[href^="mailto:"]`).First()
	if anchor.Length() > 0 {
		if text := strings.TrimSpace(anchor.Text()); text != "" {
			return text
		}
		href := strings.TrimPrefix(anchor.AttrOr("href", ""), "mailto:")
		if cut := strings.IndexByte(href, '?'); cut >= 0 {
			href = href[:cut]
		}
		if href = strings.TrimSpace(href); href != "" {
			return href
		}
	}
	return e.emailRegex.FindString(collapseWhitespace(doc.Find("body").Text()))
}

// extractPhoto prefers the open-graph image, then the first document image
// whose source is not site chrome, resolved to an absolute URL.
func (e *Extractor) extractPhoto(doc *goquery.Document) string {
	if og := strings.TrimSpace(doc.Find(`meta[property="og:image"]`).First().AttrOr("content", "")); og != "" {
		return og
	}

	var photo string
	doc.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" || e.isSkippedPhoto(src) {
			return true
		}
		if absolute, err := urlhandler.ResolveURL(src, e.base); err == nil {
			photo = absolute
			return false
		}
		return true
	})
	return photo
}

func (e *Extractor) isSkippedPhoto(src string) bool {
	lowered := strings.ToLower(src)
	for _, marker := range e.cfg.PhotoSkipMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
