package deckpdf

import "context"

// Deck is the navigation API exposed by a live presentation.
//
// Implementations talk to the presentation runtime and must return an error
// wrapping [ErrRuntimeUnavailable] when it cannot be reached or throws.
type Deck interface {
	// TotalSlides returns the number of slides, read from the live runtime.
	TotalSlides(ctx context.Context) (int, error)

	// FragmentIndices returns one entry per fragment-tagged element of the
	// slide: its reveal-group index, or "" if it has none.
	FragmentIndices(ctx context.Context, slide int) ([]string, error)

	// Jump shows the slide with no fragments revealed.
	Jump(ctx context.Context, slide int) error

	// CurrentSlide returns the index of the slide being displayed.
	CurrentSlide(ctx context.Context) (int, error)

	// NextFragment reveals the next fragment group. It returns false if the
	// current slide has nothing left to reveal.
	NextFragment(ctx context.Context) (bool, error)

	// HideFragments forces every fragment of the current slide hidden.
	HideFragments(ctx context.Context) error
}

// Screen is a rendering surface that can be rasterized.
type Screen interface {
	// Capture returns a PNG of exactly vp, clipped at the origin.
	Capture(ctx context.Context, vp Viewport) ([]byte, error)
}

// PageSink receives captured frames in traversal order.
type PageSink interface {
	AppendPage(f Frame) error
}

// Slide describes one slide of the deck.
type Slide struct {
	Index         int
	FragmentCount int // distinct reveal groups, not elements
}

// Pages returns how many output pages the slide contributes.
func (s Slide) Pages() int {
	return 1 + s.FragmentCount
}

// Frame is a single captured presentation state.
type Frame struct {
	Slide int    // slide index
	Step  int    // fragment step, 0 for the base state
	PNG   []byte // raster of the configured viewport
}
