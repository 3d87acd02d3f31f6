package stabilizer

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/kkupeople/internal/config"
)

// fakeSession scripts Eval responses so stabilization can run without a
// browser. Each Eval is routed by a marker substring of the script.
type fakeSession struct {
	clickResults    []bool
	containerHeight func(call int) *float64
	windowHeight    func(call int) float64

	clickCalls     int
	containerCalls int
	windowCalls    int
}

func (f *fakeSession) Navigate(context.Context, string) error { return nil }
func (f *fakeSession) HTML(context.Context) (string, error)   { return "", nil }
func (f *fakeSession) Backend() string                        { return "fake" }
func (f *fakeSession) Close()                                 {}

func (f *fakeSession) Eval(_ context.Context, js string, out any) error {
	switch {
	case strings.Contains(js, "MouseEvent"):
		clicked := false
		if f.clickCalls < len(f.clickResults) {
			clicked = f.clickResults[f.clickCalls]
		}
		f.clickCalls++
		return assign(out, clicked)
	case strings.Contains(js, "overflowY"):
		h := f.containerHeight(f.containerCalls)
		f.containerCalls++
		return assign(out, h)
	case strings.Contains(js, "window.scrollTo"):
		h := f.windowHeight(f.windowCalls)
		f.windowCalls++
		return assign(out, h)
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

func fastConfig() config.StabilizerConfig {
	cfg := config.NewDefaultStabilizerConfig()
	cfg.ClickSettleMs = 0
	cfg.ContainerSettleMs = 0
	cfg.WindowSettleMs = 0
	return cfg
}

func TestStabilize_TerminatesOnNeverStabilizingPage(t *testing.T) {
	cfg := fastConfig()
	cfg.ClickRounds = 5
	cfg.ContainerRounds = 7
	cfg.WindowScrollRounds = 3

	// Every round clicks, every scroll grows the page: only the budgets can
	// stop the loops.
	always := make([]bool, 100)
	for i := range always {
		always[i] = true
	}
	session := &fakeSession{
		clickResults: always,
		containerHeight: func(call int) *float64 {
			h := float64(1000 + call*100)
			return &h
		},
		windowHeight: func(call int) float64 { return float64(2000 + call*100) },
	}

	st := New(cfg, []string{"Load more"}, zerolog.Nop())
	st.Stabilize(context.Background(), session)

	assert.Equal(t, 5, session.clickCalls)
	assert.Equal(t, 7, session.containerCalls)
	assert.Equal(t, 3, session.windowCalls)
}

func TestClickPass_StopsEarlyWhenNothingToClick(t *testing.T) {
	session := &fakeSession{
		clickResults:    []bool{true, true, false},
		containerHeight: func(int) *float64 { return nil },
		windowHeight:    func(int) float64 { return 100 },
	}

	st := New(fastConfig(), []string{"โหลดเพิ่ม", "Load more"}, zerolog.Nop())
	st.Stabilize(context.Background(), session)

	assert.Equal(t, 3, session.clickCalls, "round after the last click stops the pass")
}

func TestContainerPass_StopsWhenHeightSettles(t *testing.T) {
	heights := []float64{1000, 1400, 1400}
	session := &fakeSession{
		containerHeight: func(call int) *float64 {
			h := heights[min(call, len(heights)-1)]
			return &h
		},
		windowHeight: func(int) float64 { return 100 },
	}

	st := New(fastConfig(), nil, zerolog.Nop())
	st.Stabilize(context.Background(), session)

	// 1000, 1400, 1400(stable) -> three calls then stop.
	assert.Equal(t, 3, session.containerCalls)
}

func TestContainerPass_SkipsWhenNoScrollableContainer(t *testing.T) {
	session := &fakeSession{
		containerHeight: func(int) *float64 { return nil },
		windowHeight:    func(int) float64 { return 100 },
	}

	st := New(fastConfig(), nil, zerolog.Nop())
	st.Stabilize(context.Background(), session)

	assert.Equal(t, 1, session.containerCalls)
}

func TestWindowPass_StopsWhenHeightSettles(t *testing.T) {
	heights := []float64{3000, 3000}
	session := &fakeSession{
		containerHeight: func(int) *float64 { return nil },
		windowHeight: func(call int) float64 {
			return heights[min(call, len(heights)-1)]
		},
	}

	st := New(fastConfig(), nil, zerolog.Nop())
	st.Stabilize(context.Background(), session)

	assert.Equal(t, 2, session.windowCalls)
}

func TestNew_LowercasesVocabulary(t *testing.T) {
	st := New(fastConfig(), []string{"Load More", " Next "}, zerolog.Nop())
	require.Contains(t, st.clickScript, `"load more"`)
	require.Contains(t, st.clickScript, `"next"`)
}
