package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	// positionLabel prefixes an explicit position line on flat-layout pages.
	positionLabel = "ตำแหน่ง"
	// roleKeyword marks a line stating an academic role on paneled pages.
	roleKeyword = "อาจารย์"
)

// positionValueRegex captures the remainder of a labelled position line,
// accepting both ASCII and fullwidth colons.
var positionValueRegex = regexp.MustCompile(positionLabel + `[:：]?\s*(.+)`)

// infoFromPanel parses the biography panel of a tabbed profile page. The
// position is the first paragraph-like element naming an academic role.
func (e *Extractor) infoFromPanel(panel *goquery.Selection) (info, position string) {
	info = e.cleanLines(strings.Join(textLines(panel), "\n"))

	panel.Find("p, div, span").EachWithBreak(func(_ int, tag *goquery.Selection) bool {
		if strings.Contains(tag.Text(), roleKeyword) {
			position = collapseWhitespace(tag.Text())
			return false
		}
		return true
	})
	return info, position
}

// infoFromPage parses a flat profile page without tab panels: concatenate
// the text of every structural container, drop chrome lines, then pull the
// position from a labelled line or, failing that, the first role line.
func (e *Extractor) infoFromPage(doc *goquery.Document) (info, position string) {
	var texts []string
	doc.Find("ul, ol, p, table, tr, td, div, span").Each(func(_ int, tag *goquery.Selection) {
		if text := collapseWhitespace(tag.Text()); utf8.RuneCountInString(text) > 3 {
			texts = append(texts, text)
		}
	})
	info = e.cleanLines(strings.Join(texts, "\n"))

	for _, line := range strings.Split(info, "\n") {
		if !strings.Contains(line, positionLabel) {
			continue
		}
		if m := positionValueRegex.FindStringSubmatch(line); m != nil {
			return info, strings.TrimSpace(m[1])
		}
	}
	for _, line := range strings.Split(info, "\n") {
		if strings.Contains(line, roleKeyword) {
			return info, strings.TrimSpace(line)
		}
	}
	return info, ""
}
