package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/kkupeople/internal/browser"
	"github.com/aleister1102/kkupeople/internal/config"
	"github.com/aleister1102/kkupeople/internal/stabilizer"
	"github.com/aleister1102/kkupeople/internal/urlhandler"
)

// Aggregator discovers profile URLs on listing pages. Per tab it stabilizes
// the rendered content and unions the candidates from all three strategies,
// then classifies and canonicalizes the result.
type Aggregator struct {
	classifier *urlhandler.ProfileClassifier
	stab       *stabilizer.Stabilizer
	tabLabels  []string
	tabWait    time.Duration
	tabSettle  time.Duration
	logger     zerolog.Logger
}

// NewAggregator wires a discovery aggregator from scrape and stabilizer
// configuration.
func NewAggregator(scrapeCfg config.ScrapeConfig, stabCfg config.StabilizerConfig, log zerolog.Logger) (*Aggregator, error) {
	classifier, err := urlhandler.NewProfileClassifier(scrapeCfg.BaseURL, scrapeCfg.LangPrefixes)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL '%s': %w", scrapeCfg.BaseURL, err)
	}

	return &Aggregator{
		classifier: classifier,
		stab:       stabilizer.New(stabCfg, scrapeCfg.LoadMoreLabels, log),
		tabLabels:  append([]string(nil), scrapeCfg.TabLabels...),
		tabWait:    time.Duration(stabCfg.TabWaitSecs) * time.Second,
		tabSettle:  time.Duration(stabCfg.TabSettleMs) * time.Millisecond,
		logger:     log.With().Str("component", "Discovery").Logger(),
	}, nil
}

// Discover visits each listing URL and returns the union of profile URLs
// found across all of them, canonicalized and sorted. A listing that fails
// to load is logged and skipped; Discover fails only when every listing
// failed.
func (ag *Aggregator) Discover(ctx context.Context, session browser.Session, listingURLs []string) ([]string, error) {
	found := make(map[string]struct{})
	var visited int

	for _, listingURL := range listingURLs {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err := ag.discoverListing(ctx, session, listingURL, found); err != nil {
			ag.logger.Warn().Err(err).Str("url", listingURL).Msg("Listing page skipped")
			continue
		}
		visited++
	}

	if visited == 0 && len(listingURLs) > 0 {
		return nil, errors.New("all listing pages failed to load")
	}

	urls := make([]string, 0, len(found))
	for u := range found {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	ag.logger.Info().Int("listings", visited).Int("profiles", len(urls)).Msg("Link discovery completed")
	return urls, nil
}

func (ag *Aggregator) discoverListing(ctx context.Context, session browser.Session, listingURL string, found map[string]struct{}) error {
	if err := session.Navigate(ctx, listingURL); err != nil {
		if !errors.Is(err, browser.ErrNavigationTimeout) {
			return err
		}
		// The page may have rendered enough to harvest before the load
		// event fired. Continue with whatever is in the DOM.
		ag.logger.Warn().Str("url", listingURL).Msg("Navigation timed out, harvesting partial DOM")
	}

	// Baseline round before any tab interaction, so a page without tabs
	// still yields its links.
	ag.harvestCurrentView(ctx, session, found)

	tabbed := false
	for _, label := range ag.tabLabels {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !browser.ClickByText(ctx, session, label, ag.tabWait, ag.tabSettle) {
			ag.logger.Debug().Str("tab", label).Msg("Tab not present on page")
			continue
		}
		tabbed = true
		ag.harvestCurrentView(ctx, session, found)
	}

	// Safety net over whatever view the page ended up in, covering tabs
	// whose click attempts all failed.
	if tabbed {
		ag.harvestCurrentView(ctx, session, found)
	}

	return nil
}

func (ag *Aggregator) harvestCurrentView(ctx context.Context, session browser.Session, found map[string]struct{}) {
	ag.stab.Stabilize(ctx, session)

	before := len(found)
	ag.collectCandidates(collectFromDOM(ctx, session), found)
	ag.collectCandidates(collectFromState(ctx, session), found)
	if html, err := session.HTML(ctx); err == nil {
		ag.collectCandidates(collectFromMarkup(html), found)
	}

	ag.logger.Debug().Int("new", len(found)-before).Int("total", len(found)).Msg("View harvested")
}

func (ag *Aggregator) collectCandidates(candidates []string, found map[string]struct{}) {
	base := ag.classifier.Base()
	for _, candidate := range candidates {
		absolute, err := urlhandler.ResolveURL(candidate, base)
		if err != nil {
			continue
		}
		canonical, err := urlhandler.CanonicalizeURL(absolute)
		if err != nil {
			continue
		}
		if ag.classifier.IsProfileURL(canonical) {
			found[canonical] = struct{}{}
		}
	}
}
