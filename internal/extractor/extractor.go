package extractor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/aleister1102/kkupeople/internal/browser"
	"github.com/aleister1102/kkupeople/internal/config"
	"github.com/aleister1102/kkupeople/internal/models"
	"github.com/aleister1102/kkupeople/internal/urlhandler"
)

// Extractor turns one profile page into a PersonRecord. Every field is
// derived through a fallback cascade and degrades to an empty value rather
// than failing; an essentially empty record is a valid low-value output.
type Extractor struct {
	cfg         config.ScrapeConfig
	base        *url.URL
	emailRegex  *regexp.Regexp
	keywordWait time.Duration
	tabWait     time.Duration
	tabSettle   time.Duration
	logger      zerolog.Logger
}

// New builds an Extractor from scrape configuration. The email pattern is
// anchored to the configured institutional domain.
func New(scrapeCfg config.ScrapeConfig, stabCfg config.StabilizerConfig, log zerolog.Logger) (*Extractor, error) {
	base, err := url.Parse(strings.TrimSpace(scrapeCfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL '%s': %w", scrapeCfg.BaseURL, err)
	}

	emailRegex, err := regexp.Compile(`[A-Za-z0-9._%+-]+@` + regexp.QuoteMeta(scrapeCfg.EmailDomain))
	if err != nil {
		return nil, fmt.Errorf("invalid email domain '%s': %w", scrapeCfg.EmailDomain, err)
	}

	return &Extractor{
		cfg:         scrapeCfg,
		base:        base,
		emailRegex:  emailRegex,
		keywordWait: time.Duration(scrapeCfg.ProfileKeywordWaitSecs) * time.Second,
		tabWait:     time.Duration(stabCfg.TabWaitSecs) * time.Second,
		tabSettle:   time.Duration(stabCfg.TabSettleMs) * time.Millisecond,
		logger:      log.With().Str("component", "Extractor").Logger(),
	}, nil
}

// Extract visits one profile URL and builds its record. A navigation
// timeout is tolerated and extraction proceeds on the partial DOM; any
// other navigation failure is returned to the caller for per-item handling.
func (e *Extractor) Extract(ctx context.Context, session browser.Session, profileURL string) (*models.PersonRecord, error) {
	if err := session.Navigate(ctx, profileURL); err != nil {
		if !errors.Is(err, browser.ErrNavigationTimeout) {
			return nil, fmt.Errorf("failed to load profile page: %w", err)
		}
		e.logger.Warn().Str("url", profileURL).Msg("Navigation timed out, extracting from partial DOM")
	}

	e.waitForContent(ctx, session)

	html, err := session.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read page markup: %w", err)
	}

	record, err := e.ExtractFromHTML(html, profileURL)
	if err != nil {
		return nil, err
	}

	// Some profile variants render education only after its tab is opened.
	if record.Education == "" {
		record.Education = e.educationViaTabs(ctx, session)
	}
	// Last resort: the whole page text, chrome lines removed.
	if record.Education == "" {
		if html, err := session.HTML(ctx); err == nil {
			if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
				record.Education = e.cleanLines(strings.Join(textLines(doc.Find("body")), "\n"))
			}
		}
	}

	return record, nil
}

// ExtractFromHTML builds a record from already-serialized page markup.
// Separated from Extract so the cascades are testable against static
// fixtures without a browser.
func (e *Extractor) ExtractFromHTML(html, profileURL string) (*models.PersonRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile markup: %w", err)
	}

	canonical, err := urlhandler.CanonicalizeURL(profileURL)
	if err != nil {
		return nil, fmt.Errorf("invalid profile URL '%s': %w", profileURL, err)
	}

	record := &models.PersonRecord{ProfileURL: canonical}
	record.NameTH, record.NameEN = e.extractNames(doc)
	record.Email = e.extractEmail(doc)
	record.PhotoURL = e.extractPhoto(doc)

	panels := doc.Find(`div[role="tabpanel"]`)
	if panels.Length() > 0 {
		record.Info, record.Position = e.infoFromPanel(panels.First())
		if panels.Length() > 1 {
			eduPanel := panels.Eq(1)
			record.Education = e.extractEducation(eduPanel)
			if record.Education == "" {
				record.Education = e.cleanLines(strings.Join(textLines(eduPanel), "\n"))
			}
		} else {
			record.Education = e.extractEducation(doc.Selection)
			record.Info = e.dropEducationLines(record.Info)
		}
	} else {
		record.Info, record.Position = e.infoFromPage(doc)
		record.Education = e.extractEducation(doc.Selection)
		record.Info = e.dropEducationLines(record.Info)
	}

	return record, nil
}

// waitForContent polls the page until an education keyword shows up in the
// markup or the wait budget runs out. Profile content is client-rendered
// and arrives after the load event.
func (e *Extractor) waitForContent(ctx context.Context, session browser.Session) {
	if e.keywordWait <= 0 {
		return
	}
	deadline := time.Now().Add(e.keywordWait)
	for {
		if html, err := session.HTML(ctx); err == nil && e.hasEducationKeyword(html) {
			return
		}
		if time.Now().After(deadline) || ctx.Err() != nil {
			return
		}
		sleep(ctx, 500*time.Millisecond)
	}
}

// educationViaTabs opens each known education tab caption in turn and
// parses the revealed panel, keeping the first non-empty result.
func (e *Extractor) educationViaTabs(ctx context.Context, session browser.Session) string {
	for _, label := range e.cfg.EducationTabLabels {
		if ctx.Err() != nil {
			return ""
		}
		if !browser.ClickByText(ctx, session, label, e.tabWait, e.tabSettle) {
			continue
		}
		html, err := session.HTML(ctx)
		if err != nil {
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			continue
		}
		if education := e.extractEducation(doc.Selection); education != "" {
			return education
		}
	}
	return ""
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
