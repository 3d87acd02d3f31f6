package urlhandler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ResolveURL resolves a (possibly relative) href against a base URL and
// returns the absolute form. Scheme-relative and already-absolute hrefs are
// passed through url.URL resolution unchanged.
func ResolveURL(href string, base *url.URL) (string, error) {
	trimmedHref := strings.TrimSpace(href)
	if trimmedHref == "" {
		return "", errors.New("href is empty")
	}

	if base == nil {
		parsedHref, err := url.Parse(trimmedHref)
		if err != nil {
			return "", fmt.Errorf("error parsing base-less href '%s': %w", trimmedHref, err)
		}
		if !parsedHref.IsAbs() {
			return "", fmt.Errorf("cannot resolve relative URL '%s' without a base URL", trimmedHref)
		}
		return parsedHref.String(), nil
	}

	resolved, err := base.Parse(trimmedHref)
	if err != nil {
		return "", fmt.Errorf("error resolving href '%s' with base '%s': %w", trimmedHref, base.String(), err)
	}
	return resolved.String(), nil
}

// CanonicalizeURL reduces a URL to its canonical comparison form:
// scheme + host + path with the trailing slash stripped, query and fragment
// discarded. Canonicalization is idempotent.
func CanonicalizeURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", errors.New("URL is empty or only whitespace")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("could not parse URL '%s': %w", trimmed, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("URL '%s' lacks scheme or host", trimmed)
	}

	canonical := parsed.Scheme + "://" + parsed.Host + parsed.Path
	return strings.TrimRight(canonical, "/"), nil
}

// ValidateURLFormat validates URL format using net/url parsing. Used by
// config validation.
func ValidateURLFormat(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return fmt.Errorf("URL is empty")
	}

	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return fmt.Errorf("invalid URL format '%s': %w", trimmed, err)
	}
	return nil
}
