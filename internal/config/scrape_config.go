package config

// ScrapeConfig describes the target site and the heuristic vocabularies the
// discovery and extraction stages consume. The lists are injected as
// immutable data; nothing mutates them after load.
type ScrapeConfig struct {
	BaseURL      string   `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	SeedPaths    []string `json:"seed_paths,omitempty" yaml:"seed_paths,omitempty"`
	LangPrefixes []string `json:"lang_prefixes,omitempty" yaml:"lang_prefixes,omitempty"`
	EmailDomain  string   `json:"email_domain,omitempty" yaml:"email_domain,omitempty"`

	TabLabels          []string `json:"tab_labels,omitempty" yaml:"tab_labels,omitempty"`
	LoadMoreLabels     []string `json:"load_more_labels,omitempty" yaml:"load_more_labels,omitempty"`
	ExcludedLines      []string `json:"excluded_lines,omitempty" yaml:"excluded_lines,omitempty"`
	EducationKeywords  []string `json:"education_keywords,omitempty" yaml:"education_keywords,omitempty"`
	EducationTabLabels []string `json:"education_tab_labels,omitempty" yaml:"education_tab_labels,omitempty"`
	PhotoSkipMarkers   []string `json:"photo_skip_markers,omitempty" yaml:"photo_skip_markers,omitempty"`

	// ProfileKeywordWaitSecs bounds the wait for client-rendered profile
	// content to appear before extraction reads the page.
	ProfileKeywordWaitSecs int `json:"profile_keyword_wait_secs,omitempty" yaml:"profile_keyword_wait_secs,omitempty"`

	// DebugLinkFile, when set, receives the sorted discovered profile URLs
	// one per line.
	DebugLinkFile string `json:"debug_link_file,omitempty" yaml:"debug_link_file,omitempty"`
}

// NewDefaultScrapeConfig creates scrape configuration for the KKU College of
// Computing people directory.
func NewDefaultScrapeConfig() ScrapeConfig {
	return ScrapeConfig{
		BaseURL:            DefaultBaseURL,
		SeedPaths:          append([]string(nil), DefaultSeedPaths...),
		LangPrefixes:       append([]string(nil), DefaultLangPrefixes...),
		EmailDomain:        DefaultEmailDomain,
		TabLabels:          append([]string(nil), DefaultTabLabels...),
		LoadMoreLabels:     append([]string(nil), DefaultLoadMoreLabels...),
		ExcludedLines:      append([]string(nil), DefaultExcludedLines...),
		EducationKeywords:  append([]string(nil), DefaultEducationKeywords...),
		EducationTabLabels: append([]string(nil), DefaultEducationTabLabels...),
		PhotoSkipMarkers:   append([]string(nil), DefaultPhotoSkipMarkers...),

		ProfileKeywordWaitSecs: DefaultProfileKeywordWait,
	}
}

// StabilizerConfig bounds the content-stabilization loops. Every loop is
// budgeted so a page that never stops growing still terminates.
type StabilizerConfig struct {
	ClickRounds        int `json:"click_rounds,omitempty" yaml:"click_rounds,omitempty" validate:"omitempty,min=1"`
	ClickSettleMs      int `json:"click_settle_ms,omitempty" yaml:"click_settle_ms,omitempty"`
	ContainerRounds    int `json:"container_rounds,omitempty" yaml:"container_rounds,omitempty" validate:"omitempty,min=1"`
	ContainerSettleMs  int `json:"container_settle_ms,omitempty" yaml:"container_settle_ms,omitempty"`
	WindowScrollRounds int `json:"window_scroll_rounds,omitempty" yaml:"window_scroll_rounds,omitempty" validate:"omitempty,min=1"`
	WindowSettleMs     int `json:"window_settle_ms,omitempty" yaml:"window_settle_ms,omitempty"`
	TabWaitSecs        int `json:"tab_wait_secs,omitempty" yaml:"tab_wait_secs,omitempty"`
	TabSettleMs        int `json:"tab_settle_ms,omitempty" yaml:"tab_settle_ms,omitempty"`
}

// NewDefaultStabilizerConfig creates default stabilizer budgets.
func NewDefaultStabilizerConfig() StabilizerConfig {
	return StabilizerConfig{
		ClickRounds:        DefaultClickRounds,
		ClickSettleMs:      DefaultClickSettleMs,
		ContainerRounds:    DefaultContainerRounds,
		ContainerSettleMs:  DefaultContainerSettleMs,
		WindowScrollRounds: DefaultWindowScrollRounds,
		WindowSettleMs:     DefaultWindowSettleMs,
		TabWaitSecs:        DefaultTabWaitSecs,
		TabSettleMs:        DefaultTabSettleMs,
	}
}
