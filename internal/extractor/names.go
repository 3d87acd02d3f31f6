package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// latinRunRegex finds the first run of Latin text in a bilingual title.
var latinRunRegex = regexp.MustCompile(`[A-Za-z].+`)

// nameTrimCutset is punctuation left behind at the seam of a bilingual
// title once it is split.
const nameTrimCutset = " ()-–—​"

// SplitBilingualName splits a page title into a Thai-script name and a
// Latin-script name at the first Latin-letter run. A title with no Latin
// text is entirely the Thai name.
func SplitBilingualName(title string) (nameTH, nameEN string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ""
	}
	loc := latinRunRegex.FindStringIndex(title)
	if loc == nil {
		return title, ""
	}
	nameTH = strings.Trim(title[:loc[0]], nameTrimCutset)
	nameEN = strings.Trim(title[loc[0]:loc[1]], nameTrimCutset)
	return nameTH, nameEN
}

// extractNames reads the bilingual name from the og:title meta attribute,
// falling back to the first heading when the meta is absent or empty.
func (e *Extractor) extractNames(doc *goquery.Document) (nameTH, nameEN string) {
	title := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).First().AttrOr("content", ""))
	nameTH, nameEN = SplitBilingualName(title)
	if nameTH != "" || nameEN != "" {
		return nameTH, nameEN
	}

	heading := doc.Find("h1, h2, h3").First()
	if heading.Length() == 0 {
		return "", ""
	}
	return SplitBilingualName(collapseWhitespace(heading.Text()))
}
