package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aleister1102/kkupeople/internal/config"
)

var (
	// ErrBackendUnavailable indicates the requested automation backend could
	// not be started (missing binary, driver mismatch).
	ErrBackendUnavailable = errors.New("browser backend unavailable")

	// ErrNavigationTimeout indicates a page did not reach ready state within
	// the configured wait. Callers proceed with whatever partial DOM is
	// present.
	ErrNavigationTimeout = errors.New("navigation timeout")
)

// Session is the capability surface the pipeline needs from a running
// browser: navigate, evaluate script, read the serialized DOM. One session is
// not safe for concurrent navigation; the orchestrator drives it
// sequentially.
type Session interface {
	// Navigate loads a URL and waits for the document to reach a ready
	// state. An ErrNavigationTimeout still leaves the session on the
	// partially loaded page.
	Navigate(ctx context.Context, url string) error

	// Eval runs a script in page context and decodes its JSON-serializable
	// result into out (out may be nil). Script-level exceptions come back as
	// errors; callers treat them as "no data", never as fatal.
	Eval(ctx context.Context, js string, out any) error

	// HTML returns the serialized markup of the current page.
	HTML(ctx context.Context) (string, error)

	// Backend names the engine behind this session.
	Backend() string

	// Close releases all OS-level resources. Safe to call on every exit
	// path.
	Close()
}

// Open builds a Session according to the backend preference. A pinned
// backend failing is fatal; "auto" tries rod first and falls back to chromedp
// transparently.
func Open(cfg config.BrowserConfig, log zerolog.Logger) (Session, error) {
	log = log.With().Str("component", "BrowserSession").Logger()

	switch strings.ToLower(cfg.Backend) {
	case "rod":
		return openRod(cfg, log)
	case "chromedp":
		return openChromedp(cfg, log)
	case "", "auto":
		session, err := openRod(cfg, log)
		if err == nil {
			return session, nil
		}
		log.Warn().Err(err).Msg("Primary backend failed to start, falling back to chromedp")
		return openChromedp(cfg, log)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrBackendUnavailable, cfg.Backend)
	}
}

func openRod(cfg config.BrowserConfig, log zerolog.Logger) (Session, error) {
	session, err := NewRodSession(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("%w: rod: %v", ErrBackendUnavailable, err)
	}
	return session, nil
}

func openChromedp(cfg config.BrowserConfig, log zerolog.Logger) (Session, error) {
	session, err := NewChromedpSession(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("%w: chromedp: %v", ErrBackendUnavailable, err)
	}
	return session, nil
}
