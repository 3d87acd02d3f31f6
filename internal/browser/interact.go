package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// clickByTextScript clicks the first element whose visible text or
// aria-label contains the wanted string, matched case-insensitively.
// Element click first, synthetic event as fallback for targets that are
// present but not natively interactable. Returns whether anything was
// clicked.
const clickByTextScript = `(() => {
	const want = %s;
	const targets = document.querySelectorAll('[role="tab"], .v-tab, button, a, li');
	for (const t of targets) {
		const text = ((t.innerText || t.textContent || '').trim() ||
			(t.getAttribute('aria-label') || '').trim()).toLowerCase();
		if (!text || !text.includes(want)) continue;
		t.scrollIntoView({ block: 'center' });
		try {
			t.click();
		} catch (e) {
			try {
				t.dispatchEvent(new MouseEvent('click', { bubbles: true }));
			} catch (e2) {
				continue;
			}
		}
		return true;
	}
	return false;
})()`

// ClickByText clicks the first element whose visible text contains label,
// polling until the element appears or the wait budget runs out. Tabbed
// content is rendered lazily, so a miss on the first poll is normal.
func ClickByText(ctx context.Context, session Session, label string, wait, settle time.Duration) bool {
	quoted, err := json.Marshal(strings.ToLower(strings.TrimSpace(label)))
	if err != nil {
		return false
	}
	script := fmt.Sprintf(clickByTextScript, string(quoted))

	deadline := time.Now().Add(wait)
	for {
		var clicked bool
		if err := session.Eval(ctx, script, &clicked); err == nil && clicked {
			sleepCtx(ctx, settle)
			return true
		}
		if time.Now().After(deadline) || ctx.Err() != nil {
			return false
		}
		sleepCtx(ctx, 500*time.Millisecond)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
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
