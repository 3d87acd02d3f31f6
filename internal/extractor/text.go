package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// cleanLines splits text into lines and drops blanks and any line matching
// the configured chrome exclusions by substring.
func (e *Extractor) cleanLines(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || e.isExcludedLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func (e *Extractor) isExcludedLine(line string) bool {
	for _, excluded := range e.cfg.ExcludedLines {
		if strings.Contains(line, excluded) {
			return true
		}
	}
	return false
}

// dropEducationLines removes education-keyword lines from an info block so
// the two fields do not bleed into each other on pages without separate
// panels.
func (e *Extractor) dropEducationLines(info string) string {
	if info == "" {
		return info
	}
	var kept []string
	for _, line := range strings.Split(info, "\n") {
		if e.hasEducationKeyword(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func (e *Extractor) hasEducationKeyword(text string) bool {
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	for _, keyword := range e.cfg.EducationKeywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// brText renders a selection's text with <br> elements converted to
// newlines, so line structure inside table cells and paragraphs survives.
// Script and style subtrees are skipped.
func brText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		renderText(node, &sb)
	}
	return sb.String()
}

// textLines collects the trimmed, non-empty text node contents of a
// selection in document order.
func textLines(sel *goquery.Selection) []string {
	var lines []string
	for _, part := range strings.Split(brText(sel), "\n") {
		if part = strings.TrimSpace(part); part != "" {
			lines = append(lines, part)
		}
	}
	return lines
}

func renderText(node *html.Node, sb *strings.Builder) {
	switch node.Type {
	case html.TextNode:
		if text := strings.TrimSpace(node.Data); text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	case html.ElementNode:
		switch node.Data {
		case "script", "style", "noscript":
			return
		case "br":
			sb.WriteString("\n")
			return
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		renderText(child, sb)
	}
}
