package urlhandler

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// staticExtRegex matches static-asset paths; query or fragment after the
	// extension does not rescue them.
	staticExtRegex = regexp.MustCompile(`(?i)\.(?:css|js|png|jpe?g|gif|svg|webp|woff2?|ttf|ico|pdf)(?:\?|#|$)`)

	// allowedSegmentRegex is the charset a profile slug may use: Latin,
	// digits, underscore, dot, hyphen and Thai characters.
	allowedSegmentRegex = regexp.MustCompile(`^[A-Za-z0-9_.\-ก-๙]+$`)
)

// ProfileClassifier decides whether a canonical URL points at a person
// profile page on the configured origin. Profile pages live at the site root
// as a single dot-containing segment (/firstname.lastname), optionally behind
// a language prefix.
type ProfileClassifier struct {
	base         *url.URL
	langPrefixes []string
}

// NewProfileClassifier builds a classifier for one site origin. langPrefixes
// are path prefixes like "/en" that are stripped before segment counting.
func NewProfileClassifier(baseURL string, langPrefixes []string) (*ProfileClassifier, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, err
	}

	prefixes := make([]string, 0, len(langPrefixes))
	for _, p := range langPrefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		prefixes = append(prefixes, strings.TrimRight(p, "/"))
	}

	return &ProfileClassifier{base: base, langPrefixes: prefixes}, nil
}

// Base returns the configured site origin.
func (pc *ProfileClassifier) Base() *url.URL {
	return pc.base
}

// StripLangPrefix removes a leading language prefix from a path. A path that
// is exactly a language root collapses to "/".
func (pc *ProfileClassifier) StripLangPrefix(path string) string {
	for _, prefix := range pc.langPrefixes {
		if path == prefix || path == prefix+"/" {
			return "/"
		}
		if strings.HasPrefix(path, prefix+"/") {
			return path[len(prefix):]
		}
	}
	return path
}

// IsProfileURL reports whether absURL is a same-origin profile page:
// exactly one non-empty path segment after stripping an optional language
// prefix, the segment contains a literal dot, uses only allowed characters,
// and the path is not a static asset.
func (pc *ProfileClassifier) IsProfileURL(absURL string) bool {
	if absURL == "" {
		return false
	}

	parsed, err := url.Parse(absURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != pc.base.Scheme || parsed.Host != pc.base.Host {
		return false
	}

	path := parsed.Path
	if path == "" || path == "/" {
		return false
	}
	if staticExtRegex.MatchString(path) {
		return false
	}

	effective := pc.StripLangPrefix(path)
	segments := splitPathSegments(effective)
	if len(segments) != 1 {
		return false
	}

	segment := segments[0]
	return strings.Contains(segment, ".") && allowedSegmentRegex.MatchString(segment)
}

func splitPathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
