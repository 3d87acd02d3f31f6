package config

// BrowserConfig controls how the automation session is constructed. All of it
// is resolved once at session construction and never re-read mid-run.
type BrowserConfig struct {
	// Backend pins an automation backend: "rod", "chromedp" or "auto".
	// With "auto" a rod startup failure falls back to chromedp; a pinned
	// backend failing is fatal.
	Backend        string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,backend"`
	Headless       bool   `json:"headless" yaml:"headless"`
	ChromePath     string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty" validate:"omitempty,fileexists"`
	UserDataDir    string `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	UserAgent      string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	AcceptLanguage string `json:"accept_language,omitempty" yaml:"accept_language,omitempty"`
	WindowWidth    int    `json:"window_width,omitempty" yaml:"window_width,omitempty" validate:"omitempty,min=320"`
	WindowHeight   int    `json:"window_height,omitempty" yaml:"window_height,omitempty" validate:"omitempty,min=240"`
	NavTimeoutSecs int    `json:"nav_timeout_secs,omitempty" yaml:"nav_timeout_secs,omitempty" validate:"omitempty,min=1"`
	ReadySettleMs  int    `json:"ready_settle_ms,omitempty" yaml:"ready_settle_ms,omitempty"`
}

// NewDefaultBrowserConfig creates default browser configuration.
func NewDefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Backend:        DefaultBrowserBackend,
		Headless:       DefaultBrowserHeadless,
		UserAgent:      DefaultBrowserUserAgent,
		AcceptLanguage: DefaultAcceptLanguage,
		WindowWidth:    DefaultWindowWidth,
		WindowHeight:   DefaultWindowHeight,
		NavTimeoutSecs: DefaultNavTimeoutSecs,
		ReadySettleMs:  DefaultReadySettleMs,
	}
}
