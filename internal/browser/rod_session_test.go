package browser

import (
	"context"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Script evaluation and HTML serialization go through boundedPage, so a
// hung CDP call cannot stall an unattended run even when the caller
// context has no deadline of its own.
func TestBoundedPageCarriesDeadline(t *testing.T) {
	s := &RodSession{page: &rod.Page{}, navTimeout: 250 * time.Millisecond}

	deadline, ok := s.boundedPage(context.Background()).GetContext().Deadline()
	require.True(t, ok, "page calls must carry a deadline even without one on the caller context")
	assert.WithinDuration(t, time.Now().Add(250*time.Millisecond), deadline, 150*time.Millisecond)
}

func TestBoundedPageKeepsEarlierCallerDeadline(t *testing.T) {
	s := &RodSession{page: &rod.Page{}, navTimeout: time.Hour}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	deadline, ok := s.boundedPage(ctx).GetContext().Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(100*time.Millisecond), deadline, 80*time.Millisecond)
}
