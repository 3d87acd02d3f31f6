package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/rs/zerolog"

	"github.com/aleister1102/kkupeople/internal/config"
)

// RodSession drives a Chromium instance through go-rod. This is the primary
// backend.
type RodSession struct {
	browser    *rod.Browser
	page       *rod.Page
	launcher   *launcher.Launcher
	navTimeout time.Duration
	settle     time.Duration
	logger     zerolog.Logger
}

// NewRodSession launches a browser and prepares one stealth page. All
// anti-detection setup (stealth script, user agent, windowed viewport)
// happens here, before any navigation, or it would have no effect.
func NewRodSession(cfg config.BrowserConfig, log zerolog.Logger) (*RodSession, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("disable-blink-features", "AutomationControlled").
		Set("lang", cfg.AcceptLanguage).
		Set("window-size", fmt.Sprintf("%d,%d", cfg.WindowWidth, cfg.WindowHeight))

	if cfg.ChromePath != "" {
		l = l.Bin(cfg.ChromePath)
	}
	if cfg.UserDataDir != "" {
		l = l.UserDataDir(cfg.UserDataDir)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect browser: %w", err)
	}

	page, err := stealth.Page(b)
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("failed to create stealth page: %w", err)
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      cfg.UserAgent,
		AcceptLanguage: cfg.AcceptLanguage,
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to override user agent")
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.WindowWidth,
		Height:            cfg.WindowHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to set viewport")
	}

	return &RodSession{
		browser:    b,
		page:       page,
		launcher:   l,
		navTimeout: time.Duration(cfg.NavTimeoutSecs) * time.Second,
		settle:     time.Duration(cfg.ReadySettleMs) * time.Millisecond,
		logger:     log.With().Str("backend", "rod").Logger(),
	}, nil
}

// boundedPage clones the page with ctx and the navigation timeout applied,
// so every CDP call issued through the clone carries a deadline.
func (s *RodSession) boundedPage(ctx context.Context) *rod.Page {
	return s.page.Context(ctx).Timeout(s.navTimeout)
}

// Navigate loads url and waits for the load event up to the configured
// timeout. On timeout the page keeps whatever partial DOM it has.
func (s *RodSession) Navigate(ctx context.Context, url string) error {
	page := s.boundedPage(ctx)

	if err := page.Navigate(url); err != nil {
		return s.classifyNavError(url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return s.classifyNavError(url, err)
	}

	// Client-side rendering keeps mutating the DOM after the load event.
	time.Sleep(s.settle)
	return nil
}

func (s *RodSession) classifyNavError(url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrNavigationTimeout, url)
	}
	return fmt.Errorf("navigate %s: %w", url, err)
}

// Eval runs js in page context and decodes its result into out. The call
// is bounded by the navigation timeout so a hung CDP socket cannot stall
// an unattended run.
func (s *RodSession) Eval(ctx context.Context, js string, out any) error {
	obj, err := s.boundedPage(ctx).Eval(js)
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}
	if out == nil || obj == nil {
		return nil
	}

	data, err := json.Marshal(obj.Value)
	if err != nil {
		return fmt.Errorf("eval result marshal: %w", err)
	}
	return json.Unmarshal(data, out)
}

// HTML returns the serialized markup of the current page, bounded the
// same way as Eval.
func (s *RodSession) HTML(ctx context.Context) (string, error) {
	return s.boundedPage(ctx).HTML()
}

// Backend names the engine behind this session.
func (s *RodSession) Backend() string { return "rod" }

// Close releases the page, the browser and the launcher, in that order.
func (s *RodSession) Close() {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
	s.logger.Debug().Msg("Session closed")
}
