package stabilizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/kkupeople/internal/browser"
	"github.com/aleister1102/kkupeople/internal/config"
)

// Stabilizer brings a lazily loading page to a fully loaded state before
// extraction. Three independent passes run in order: click every load-more
// affordance, drain the largest scrollable container, then drain the window
// scroll. Different page regions use different loading mechanisms, so
// running all three strictly increases recall.
//
// Every pass is bounded; a page that never stops growing is treated as
// "stabilized as much as possible", never as an error.
type Stabilizer struct {
	cfg         config.StabilizerConfig
	clickScript string
	logger      zerolog.Logger
}

// New builds a Stabilizer. loadMoreLabels is the multilingual vocabulary of
// pagination affordances, matched case-insensitively by substring.
func New(cfg config.StabilizerConfig, loadMoreLabels []string, log zerolog.Logger) *Stabilizer {
	lowered := make([]string, 0, len(loadMoreLabels))
	for _, label := range loadMoreLabels {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(label)))
	}
	labelsJSON, _ := json.Marshal(lowered)

	return &Stabilizer{
		cfg:         cfg,
		clickScript: fmt.Sprintf(clickLoadMoreScript, string(labelsJSON)),
		logger:      log.With().Str("component", "Stabilizer").Logger(),
	}
}

// Stabilize runs all three passes against the session's current page.
func (st *Stabilizer) Stabilize(ctx context.Context, session browser.Session) {
	st.clickPass(ctx, session)
	st.containerPass(ctx, session)
	st.windowPass(ctx, session)
}

// clickPass clicks load-more affordances until a full round produces no
// click or the round budget runs out. The settle sleep after each click is
// load-bearing: without it the next round sees stale click-target state.
func (st *Stabilizer) clickPass(ctx context.Context, session browser.Session) {
	clicks := 0
	for round := 0; round < st.cfg.ClickRounds; round++ {
		var clicked bool
		if err := session.Eval(ctx, st.clickScript, &clicked); err != nil {
			st.logger.Debug().Err(err).Msg("Load-more click script failed, treating as no click")
			break
		}
		if !clicked {
			break
		}
		clicks++
		st.sleep(st.cfg.ClickSettleMs)
	}
	if clicks > 0 {
		st.logger.Debug().Int("clicks", clicks).Msg("Load-more pass clicked affordances")
	}
}

// containerPass scrolls the largest scrollable container to its bottom until
// its scroll extent stops growing.
func (st *Stabilizer) containerPass(ctx context.Context, session browser.Session) {
	prev := -1.0
	for round := 0; round < st.cfg.ContainerRounds; round++ {
		var height *float64
		if err := session.Eval(ctx, scrollLargestContainerScript, &height); err != nil {
			st.logger.Debug().Err(err).Msg("Container scroll script failed, stopping pass")
			return
		}
		if height == nil {
			return
		}
		st.sleep(st.cfg.ContainerSettleMs)
		if *height == prev {
			return
		}
		prev = *height
	}
}

// windowPass scrolls the whole document to its bottom until the body extent
// stops growing. Catch-all for pages that load on window scroll only.
func (st *Stabilizer) windowPass(ctx context.Context, session browser.Session) {
	prev := -1.0
	for round := 0; round < st.cfg.WindowScrollRounds; round++ {
		var height float64
		if err := session.Eval(ctx, scrollWindowScript, &height); err != nil {
			st.logger.Debug().Err(err).Msg("Window scroll script failed, stopping pass")
			return
		}
		st.sleep(st.cfg.WindowSettleMs)
		if height == prev {
			return
		}
		prev = height
	}
}

func (st *Stabilizer) sleep(ms int) {
	if ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
}
