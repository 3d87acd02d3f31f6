package urlhandler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testBase = "https://computing.kku.ac.th"

func newTestClassifier(t *testing.T) *ProfileClassifier {
	t.Helper()
	pc, err := NewProfileClassifier(testBase, []string{"/en", "/th"})
	require.NoError(t, err)
	return pc
}

func TestIsProfileURL(t *testing.T) {
	pc := newTestClassifier(t)

	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "plain profile slug with dot",
			url:      testBase + "/somchai.prasert",
			expected: true,
		},
		{
			name:     "profile slug behind en prefix",
			url:      testBase + "/en/somchai.prasert",
			expected: true,
		},
		{
			name:     "profile slug behind th prefix",
			url:      testBase + "/th/somchai.prasert",
			expected: true,
		},
		{
			name:     "thai characters in slug",
			url:      testBase + "/สมชาย.ประเสริฐ",
			expected: true,
		},
		{
			name:     "language root is not a profile",
			url:      testBase + "/en/",
			expected: false,
		},
		{
			name:     "bare language root without slash",
			url:      testBase + "/en",
			expected: false,
		},
		{
			name:     "two segments rejected",
			url:      testBase + "/a.b/c",
			expected: false,
		},
		{
			name:     "segment without dot rejected",
			url:      testBase + "/people",
			expected: false,
		},
		{
			name:     "static asset extension rejected",
			url:      testBase + "/logo.png",
			expected: false,
		},
		{
			name:     "static asset with query rejected",
			url:      testBase + "/app.js?v=2",
			expected: false,
		},
		{
			name:     "pdf rejected",
			url:      testBase + "/somchai.prasert.pdf",
			expected: false,
		},
		{
			name:     "foreign origin rejected",
			url:      "https://example.com/somchai.prasert",
			expected: false,
		},
		{
			name:     "http scheme on same host rejected",
			url:      "http://computing.kku.ac.th/somchai.prasert",
			expected: false,
		},
		{
			name:     "site root rejected",
			url:      testBase + "/",
			expected: false,
		},
		{
			name:     "empty string rejected",
			url:      "",
			expected: false,
		},
		{
			name:     "slug with disallowed characters rejected",
			url:      testBase + "/som%20chai.prasert",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pc.IsProfileURL(tt.url)
			if result != tt.expected {
				t.Errorf("IsProfileURL(%q) = %v, expected %v", tt.url, result, tt.expected)
			}
		})
	}
}

func TestStripLangPrefix(t *testing.T) {
	pc := newTestClassifier(t)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "en prefix stripped", path: "/en/somchai.prasert", expected: "/somchai.prasert"},
		{name: "th prefix stripped", path: "/th/somchai.prasert", expected: "/somchai.prasert"},
		{name: "bare prefix collapses to root", path: "/en", expected: "/"},
		{name: "prefix with trailing slash collapses to root", path: "/en/", expected: "/"},
		{name: "non prefix untouched", path: "/ensemble.page", expected: "/ensemble.page"},
		{name: "plain path untouched", path: "/somchai.prasert", expected: "/somchai.prasert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pc.StripLangPrefix(tt.path)
			if result != tt.expected {
				t.Errorf("StripLangPrefix(%q) = %q, expected %q", tt.path, result, tt.expected)
			}
		})
	}
}
