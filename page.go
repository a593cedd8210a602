package deckpdf

import "fmt"

// Viewport is the pixel size of the rendering surface. Every captured frame
// and every output page has exactly these dimensions.
type Viewport struct {
	Width  int // Width in CSS pixels.
	Height int // Height in CSS pixels.
}

// Common viewport sizes.
var (
	HD     = Viewport{Width: 1280, Height: 720}
	FullHD = Viewport{Width: 1920, Height: 1080}
	QHD    = Viewport{Width: 2560, Height: 1440}
)

// DefaultViewport returns the viewport used when none is configured.
// 2560x1440 CSS pixels print to 1920x1080 points.
func DefaultViewport() Viewport {
	return QHD
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// valid reports whether both dimensions are positive.
func (v Viewport) valid() bool {
	return v.Width > 0 && v.Height > 0
}

// resolved returns v, or the default viewport if v is unusable.
func (v Viewport) resolved() Viewport {
	if !v.valid() {
		return DefaultViewport()
	}
	return v
}

// pxToInches converts CSS pixels to inches (96 px per inch).
func pxToInches(px int) float64 {
	return float64(px) / 96.0
}

// paperDimensions returns the paper width and height in inches for print mode.
func (v Viewport) paperDimensions() (width, height float64) {
	r := v.resolved()
	return pxToInches(r.Width), pxToInches(r.Height)
}

// Mode selects how a deck is turned into a document.
type Mode int

const (
	// ModeCapture walks every slide and fragment step, screenshots each
	// state and assembles the rasters into pages. This is the default.
	ModeCapture Mode = iota
	// ModePrint loads the deck's print layout and lets Chrome print it in a
	// single pass. Fragments are not expanded into separate pages.
	ModePrint
)

func (m Mode) String() string {
	switch m {
	case ModeCapture:
		return "capture"
	case ModePrint:
		return "print"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "capture" or "print".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "capture":
		return ModeCapture, nil
	case "print":
		return ModePrint, nil
	}
	return 0, fmt.Errorf("deckpdf: unknown mode %q", s)
}
