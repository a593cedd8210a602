package deckpdf

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// chromeScreen implements [Screen] with the DevTools screenshot command.
// The context passed to Capture must carry the chromedp tab.
type chromeScreen struct{}

func (chromeScreen) Capture(ctx context.Context, vp Viewport) ([]byte, error) {
	var buf []byte
	if err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithClip(&page.Viewport{
				X:      0,
				Y:      0,
				Width:  float64(vp.Width),
				Height: float64(vp.Height),
				Scale:  1,
			}).
			Do(ctx)
		return err
	})); err != nil {
		return nil, fmt.Errorf("%w: screenshot: %w", ErrRuntimeUnavailable, err)
	}
	return buf, nil
}
