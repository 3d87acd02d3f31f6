package discovery

import (
	"context"
	"regexp"
	"strings"

	"github.com/BishopFox/jsluice"
	"github.com/PuerkitoBio/goquery"

	"github.com/aleister1102/kkupeople/internal/browser"
)

var (
	hrefAttrRegex     = regexp.MustCompile(`href=["'](/[^"']{1,200})["']`)
	routeKeyRegex     = regexp.MustCompile(`"(?:path|to|link)"\s*:\s*"(/[^"\\]{1,200})"`)
	inlineOnclickPath = regexp.MustCompile(`location\.href\s*=\s*['"](/[^'"]{1,200})['"]`)
)

// collectFromDOM evaluates the DOM scan script and returns raw path
// candidates. A script failure yields no candidates, not an error; the
// remaining strategies still run.
func collectFromDOM(ctx context.Context, session browser.Session) []string {
	var paths []string
	if err := session.Eval(ctx, domScanScript, &paths); err != nil {
		return nil
	}
	return paths
}

// collectFromMarkup scans serialized page HTML for path candidates: href
// attributes, route keys inside embedded JSON payloads, and URLs that
// jsluice recovers from inline script bodies.
func collectFromMarkup(html string) []string {
	uniq := make(map[string]struct{})
	for _, m := range hrefAttrRegex.FindAllStringSubmatch(html, -1) {
		uniq[m[1]] = struct{}{}
	}
	for _, m := range routeKeyRegex.FindAllStringSubmatch(html, -1) {
		uniq[m[1]] = struct{}{}
	}
	for _, m := range inlineOnclickPath.FindAllStringSubmatch(html, -1) {
		uniq[m[1]] = struct{}{}
	}
	for _, body := range inlineScriptBodies(html) {
		analyzer := jsluice.NewAnalyzer([]byte(body))
		for _, u := range analyzer.GetURLs() {
			if strings.HasPrefix(u.URL, "/") {
				uniq[u.URL] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(uniq))
	for p := range uniq {
		out = append(out, p)
	}
	return out
}

func inlineScriptBodies(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var bodies []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		if body := strings.TrimSpace(s.Text()); body != "" {
			bodies = append(bodies, body)
		}
	})
	return bodies
}

// collectFromState snapshots the client-rendering state object and walks it
// recursively, harvesting every string value that looks like a site path.
func collectFromState(ctx context.Context, session browser.Session) []string {
	var state any
	if err := session.Eval(ctx, nuxtStateScript, &state); err != nil {
		return nil
	}
	if state == nil {
		return nil
	}
	uniq := make(map[string]struct{})
	walkState(state, uniq)
	out := make([]string, 0, len(uniq))
	for p := range uniq {
		out = append(out, p)
	}
	return out
}

func walkState(node any, uniq map[string]struct{}) {
	switch v := node.(type) {
	case string:
		if strings.HasPrefix(v, "/") && len(v) <= 200 {
			uniq[v] = struct{}{}
		}
	case map[string]any:
		for _, child := range v {
			walkState(child, uniq)
		}
	case []any:
		for _, child := range v {
			walkState(child, uniq)
		}
	}
}
