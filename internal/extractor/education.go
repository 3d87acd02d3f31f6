package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractEducation derives the education block from a page region. The
// cascade prefers tabular data, then list items, then keyword-matched free
// text. An empty result means the region holds no recognizable education
// content; the caller decides on a last resort.
func (e *Extractor) extractEducation(sel *goquery.Selection) string {
	if education := educationFromTables(sel); education != "" {
		return education
	}
	if education := educationFromLists(sel); education != "" {
		return education
	}
	return e.educationFromKeywordLines(sel)
}

// educationFromTables renders the first table with data rows as one line
// per row, cells pipe-joined. Header rows are skipped.
func educationFromTables(sel *goquery.Selection) string {
	var result string
	sel.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tbody tr")
		if rows.Length() == 0 {
			rows = table.Find("tr")
		}

		var lines []string
		rows.Each(func(_ int, row *goquery.Selection) {
			if row.Find("th").Length() > 0 {
				return
			}
			var cells []string
			row.Find("td").Each(func(_ int, cell *goquery.Selection) {
				if text := collapseWhitespace(brText(cell)); text != "" {
					cells = append(cells, text)
				}
			})
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " | "))
			}
		})

		if len(lines) > 0 {
			result = strings.Join(lines, "\n")
			return false
		}
		return true
	})
	return result
}

func educationFromLists(sel *goquery.Selection) string {
	var items []string
	sel.Find("ul li, ol li").Each(func(_ int, item *goquery.Selection) {
		if text := collapseWhitespace(item.Text()); text != "" {
			items = append(items, text)
		}
	})
	return strings.Join(items, "\n")
}

// educationFromKeywordLines scans paragraph and container text for lines
// carrying an education keyword, deduplicated in first-seen order.
func (e *Extractor) educationFromKeywordLines(sel *goquery.Selection) string {
	seen := make(map[string]struct{})
	var lines []string
	sel.Find("p, div, span").Each(func(_ int, tag *goquery.Selection) {
		for _, line := range textLines(tag) {
			if !e.hasEducationKeyword(line) {
				continue
			}
			line = collapseWhitespace(line)
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			lines = append(lines, line)
		}
	})
	return strings.Join(lines, "\n")
}
