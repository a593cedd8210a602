package deckpdf

import (
	"context"
	"fmt"
	"time"
)

const (
	settlePollInterval = 25 * time.Millisecond
	settleTimeout      = 2 * time.Second
)

// Navigator moves a deck between presentation states.
type Navigator struct {
	deck     Deck
	interval time.Duration
	timeout  time.Duration
}

// NewNavigator returns a Navigator driving d.
func NewNavigator(d Deck) *Navigator {
	return &Navigator{deck: d, interval: settlePollInterval, timeout: settleTimeout}
}

// GotoSlide shows slide with all fragments hidden and waits, for a bounded
// time, until the deck reports it as the current slide.
func (n *Navigator) GotoSlide(ctx context.Context, slide int) error {
	if err := n.deck.Jump(ctx, slide); err != nil {
		return fmt.Errorf("jumping to slide %d: %w", slide, err)
	}

	deadline := time.Now().Add(n.timeout)
	for {
		cur, err := n.deck.CurrentSlide(ctx)
		if err != nil {
			return fmt.Errorf("reading current slide: %w", err)
		}
		if cur == slide || !time.Now().Before(deadline) {
			// A deck that never reports the target is captured as-is.
			return nil
		}
		if err := sleep(ctx, n.interval); err != nil {
			return err
		}
	}
}

// RevealNextFragment advances one fragment step. It reports false when the
// current slide has no steps left.
func (n *Navigator) RevealNextFragment(ctx context.Context) (bool, error) {
	ok, err := n.deck.NextFragment(ctx)
	if err != nil {
		return false, fmt.Errorf("revealing fragment: %w", err)
	}
	return ok, nil
}

// HideAllFragments forces the current slide's fragments hidden regardless
// of how many were revealed.
func (n *Navigator) HideAllFragments(ctx context.Context) error {
	if err := n.deck.HideFragments(ctx); err != nil {
		return fmt.Errorf("hiding fragments: %w", err)
	}
	return nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
