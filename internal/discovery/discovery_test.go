package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/kkupeople/internal/browser"
	"github.com/aleister1102/kkupeople/internal/config"
)

// fakeSession scripts browser behavior for discovery tests. Eval calls are
// routed by marker substrings of each script.
type fakeSession struct {
	navErr      map[string]error
	presentTabs []string
	domPaths    []string
	state       any
	html        string

	// lateDOMPaths are served in addition to domPaths once the scan
	// counter reaches lateFromScan, modeling content that renders late.
	lateDOMPaths []string
	lateFromScan int

	navigations []string
	tabClicks   int
	domScans    int
}

func (f *fakeSession) Navigate(_ context.Context, url string) error {
	f.navigations = append(f.navigations, url)
	if err, ok := f.navErr[url]; ok {
		return err
	}
	return nil
}

func (f *fakeSession) HTML(context.Context) (string, error) { return f.html, nil }
func (f *fakeSession) Backend() string                      { return "fake" }
func (f *fakeSession) Close()                               {}

func (f *fakeSession) Eval(_ context.Context, js string, out any) error {
	switch {
	case strings.Contains(js, `role="tab"`):
		clicked := false
		for _, label := range f.presentTabs {
			if strings.Contains(js, strings.ToLower(label)) {
				clicked = true
				break
			}
		}
		if clicked {
			f.tabClicks++
		}
		return assign(out, clicked)
	case strings.Contains(js, "MouseEvent"):
		return assign(out, false)
	case strings.Contains(js, "overflowY"):
		return assign(out, nil)
	case strings.Contains(js, "window.scrollTo"):
		return assign(out, 100.0)
	case strings.Contains(js, "__NUXT__"):
		return assign(out, f.state)
	case strings.Contains(js, "a[href]"):
		f.domScans++
		paths := f.domPaths
		if f.lateFromScan > 0 && f.domScans >= f.lateFromScan {
			paths = append(append([]string(nil), paths...), f.lateDOMPaths...)
		}
		return assign(out, paths)
	}
	return nil
}

func assign(out, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func fastScrapeConfig() (config.ScrapeConfig, config.StabilizerConfig) {
	scrapeCfg := config.NewDefaultScrapeConfig()
	stabCfg := config.NewDefaultStabilizerConfig()
	stabCfg.ClickSettleMs = 0
	stabCfg.ContainerSettleMs = 0
	stabCfg.WindowSettleMs = 0
	stabCfg.TabWaitSecs = 0
	stabCfg.TabSettleMs = 0
	return scrapeCfg, stabCfg
}

func TestCollectFromMarkup(t *testing.T) {
	html := `<html><body>
		<a href="/john.doe">John Doe</a>
		<a href="/styles/site.css">asset</a>
		<script>window.__NUXT__={"routes":[{"path":"/jane.s"}]};</script>
		<script>fetch('/api/people/somchai.p');</script>
		<script src="/app.js"></script>
	</body></html>`

	paths := collectFromMarkup(html)

	assert.Contains(t, paths, "/john.doe")
	assert.Contains(t, paths, "/jane.s")
	assert.Contains(t, paths, "/api/people/somchai.p", "jsluice recovers fetch targets from inline scripts")
	// Candidate collection is permissive; classification happens later.
	assert.Contains(t, paths, "/styles/site.css")
}

func TestCollectFromState_WalksNestedStructures(t *testing.T) {
	session := &fakeSession{
		state: map[string]any{
			"data": []any{
				map[string]any{"profile_url": "/john.doe", "name": "John"},
				map[string]any{"links": []any{"/jane.s", "not-a-path"}},
			},
			"config": map[string]any{"api": "https://example.com/api"},
		},
	}

	paths := collectFromState(context.Background(), session)

	assert.ElementsMatch(t, []string{"/john.doe", "/jane.s"}, paths)
}

func TestCollectFromState_NilState(t *testing.T) {
	session := &fakeSession{state: nil}
	assert.Empty(t, collectFromState(context.Background(), session))
}

func TestDiscover_UnionsStrategiesAndClassifies(t *testing.T) {
	scrapeCfg, stabCfg := fastScrapeConfig()
	scrapeCfg.BaseURL = "https://computing.kku.ac.th"

	session := &fakeSession{
		presentTabs: []string{"ทั้งหมด"},
		domPaths:    []string{"/john.doe", "/logo.png", "/en/jane.s", "/about"},
		state:       map[string]any{"people": []any{"/somchai.p"}},
		html:        `<a href="/mary.a">Mary</a>`,
	}

	ag, err := NewAggregator(scrapeCfg, stabCfg, zerolog.Nop())
	require.NoError(t, err)

	urls, err := ag.Discover(context.Background(), session, []string{"https://computing.kku.ac.th/people"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://computing.kku.ac.th/en/jane.s",
		"https://computing.kku.ac.th/john.doe",
		"https://computing.kku.ac.th/mary.a",
		"https://computing.kku.ac.th/somchai.p",
	}, urls, "static assets and dot-less paths are rejected, output is sorted")
	assert.Positive(t, session.tabClicks, "the present tab was activated")
}

func TestDiscover_ClosingPassAfterTabs(t *testing.T) {
	scrapeCfg, stabCfg := fastScrapeConfig()
	scrapeCfg.BaseURL = "https://computing.kku.ac.th"
	scrapeCfg.TabLabels = []string{"ทั้งหมด", "สายสนับสนุน"}

	// Scan 1 is the baseline, scan 2 follows the one clickable tab. The
	// second tab never activates, so "/late.arrival" is only reachable
	// through the closing pass over the final view.
	session := &fakeSession{
		presentTabs:  []string{"ทั้งหมด"},
		domPaths:     []string{"/john.doe"},
		lateDOMPaths: []string{"/late.arrival"},
		lateFromScan: 3,
	}

	ag, err := NewAggregator(scrapeCfg, stabCfg, zerolog.Nop())
	require.NoError(t, err)

	urls, err := ag.Discover(context.Background(), session, []string{"https://computing.kku.ac.th/people"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://computing.kku.ac.th/john.doe",
		"https://computing.kku.ac.th/late.arrival",
	}, urls, "links rendered after the last tab harvest are still collected")
}

func TestDiscover_SkipsFailingListing(t *testing.T) {
	scrapeCfg, stabCfg := fastScrapeConfig()
	scrapeCfg.BaseURL = "https://computing.kku.ac.th"

	session := &fakeSession{
		navErr:   map[string]error{"https://computing.kku.ac.th/people": errors.New("connection refused")},
		domPaths: []string{"/john.doe"},
	}

	ag, err := NewAggregator(scrapeCfg, stabCfg, zerolog.Nop())
	require.NoError(t, err)

	urls, err := ag.Discover(context.Background(), session, []string{
		"https://computing.kku.ac.th/people",
		"https://computing.kku.ac.th/en/people",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://computing.kku.ac.th/john.doe"}, urls)
}

func TestDiscover_FailsWhenEveryListingFails(t *testing.T) {
	scrapeCfg, stabCfg := fastScrapeConfig()
	scrapeCfg.BaseURL = "https://computing.kku.ac.th"

	session := &fakeSession{
		navErr: map[string]error{
			"https://computing.kku.ac.th/people": errors.New("connection refused"),
		},
	}

	ag, err := NewAggregator(scrapeCfg, stabCfg, zerolog.Nop())
	require.NoError(t, err)

	_, err = ag.Discover(context.Background(), session, []string{"https://computing.kku.ac.th/people"})
	assert.Error(t, err)
}

func TestDiscover_HarvestsPartialDOMOnNavigationTimeout(t *testing.T) {
	scrapeCfg, stabCfg := fastScrapeConfig()
	scrapeCfg.BaseURL = "https://computing.kku.ac.th"

	session := &fakeSession{
		navErr:   map[string]error{"https://computing.kku.ac.th/people": browser.ErrNavigationTimeout},
		domPaths: []string{"/john.doe"},
	}

	ag, err := NewAggregator(scrapeCfg, stabCfg, zerolog.Nop())
	require.NoError(t, err)

	urls, err := ag.Discover(context.Background(), session, []string{"https://computing.kku.ac.th/people"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://computing.kku.ac.th/john.doe"}, urls)
}
