package deckpdf

import (
	"context"
	"fmt"
)

// Capturer rasterizes a [Screen] at a fixed viewport. It never waits: the
// caller is responsible for letting the deck settle first.
type Capturer struct {
	screen Screen
	vp     Viewport
}

// NewCapturer returns a Capturer for s sized to vp.
func NewCapturer(s Screen, vp Viewport) *Capturer {
	return &Capturer{screen: s, vp: vp.resolved()}
}

// Viewport returns the capture size.
func (c *Capturer) Viewport() Viewport {
	return c.vp
}

// Capture returns a PNG of the current visible content.
func (c *Capturer) Capture(ctx context.Context) ([]byte, error) {
	buf, err := c.screen.Capture(ctx, c.vp)
	if err != nil {
		return nil, fmt.Errorf("capturing %s frame: %w", c.vp, err)
	}
	return buf, nil
}
