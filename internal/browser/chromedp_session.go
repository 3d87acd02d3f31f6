package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/aleister1102/kkupeople/internal/config"
)

// ChromedpSession drives a Chromium instance through chromedp. This is the
// fallback backend used when rod cannot start and no backend is pinned.
type ChromedpSession struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	pageCtx     context.Context
	cancelPage  context.CancelFunc
	navTimeout  time.Duration
	settle      time.Duration
	logger      zerolog.Logger
}

// NewChromedpSession starts a browser context with the same anti-detection
// flags the rod backend uses. The initial blank navigation forces the
// allocator to actually spawn the browser so startup failures surface here
// instead of on the first real page.
func NewChromedpSession(cfg config.BrowserConfig, log zerolog.Logger) (*ChromedpSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("lang", cfg.AcceptLanguage),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
		chromedp.UserAgent(cfg.UserAgent),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}
	if cfg.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.UserDataDir))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	pageCtx, cancelPage := chromedp.NewContext(allocCtx)

	s := &ChromedpSession{
		allocCtx:    allocCtx,
		cancelAlloc: cancelAlloc,
		pageCtx:     pageCtx,
		cancelPage:  cancelPage,
		navTimeout:  time.Duration(cfg.NavTimeoutSecs) * time.Second,
		settle:      time.Duration(cfg.ReadySettleMs) * time.Millisecond,
		logger:      log.With().Str("backend", "chromedp").Logger(),
	}

	startCtx, cancel := context.WithTimeout(pageCtx, s.navTimeout)
	defer cancel()
	if err := chromedp.Run(startCtx,
		page.SetBypassCSP(true),
		chromedp.Navigate("about:blank"),
	); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return s, nil
}

// Navigate loads url and waits for the body to be ready up to the configured
// timeout.
func (s *ChromedpSession) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := s.boundedCtx(ctx)
	defer cancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrNavigationTimeout, url)
		}
		return fmt.Errorf("navigate %s: %w", url, err)
	}

	time.Sleep(s.settle)
	return nil
}

// Eval runs js in page context and decodes its result into out.
func (s *ChromedpSession) Eval(ctx context.Context, js string, out any) error {
	evalCtx, cancel := s.boundedCtx(ctx)
	defer cancel()

	var raw json.RawMessage
	if err := chromedp.Run(evalCtx, chromedp.Evaluate(js, &raw)); err != nil {
		return fmt.Errorf("eval: %w", err)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// HTML returns the serialized markup of the current page.
func (s *ChromedpSession) HTML(ctx context.Context) (string, error) {
	htmlCtx, cancel := s.boundedCtx(ctx)
	defer cancel()

	var html string
	if err := chromedp.Run(htmlCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("read page html: %w", err)
	}
	return html, nil
}

// Backend names the engine behind this session.
func (s *ChromedpSession) Backend() string { return "chromedp" }

// Close tears down the page and allocator contexts.
func (s *ChromedpSession) Close() {
	s.cancelPage()
	s.cancelAlloc()
	s.logger.Debug().Msg("Session closed")
}

// boundedCtx derives a timeout context from the browser's page context.
// chromedp actions must run on the page context chain; the caller's context
// only gates whether we start at all.
func (s *ChromedpSession) boundedCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx != nil && ctx.Err() != nil {
		cancelled, cancel := context.WithCancel(s.pageCtx)
		cancel()
		return cancelled, cancel
	}
	return context.WithTimeout(s.pageCtx, s.navTimeout)
}
