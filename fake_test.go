package deckpdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// state is a presentation state as seen by the screen.
type state struct {
	slide   int
	visible int
}

// fakeDeck is an in-memory presentation. Each slide lists the
// data-fragment-index of its fragment elements.
type fakeDeck struct {
	slides [][]string

	cur     int
	step    int // logical fragment position
	visible int // fragment groups shown on screen

	keepOnJump bool // jumps leave fragment visibility untouched
	lag        int  // CurrentSlide reports the old slide this many times

	staleReads int
	calls      []string

	errTotal error
	errNext  error
	errJump  error
}

func (d *fakeDeck) TotalSlides(context.Context) (int, error) {
	d.calls = append(d.calls, "total")
	if d.errTotal != nil {
		return 0, d.errTotal
	}
	return len(d.slides), nil
}

func (d *fakeDeck) FragmentIndices(_ context.Context, slide int) ([]string, error) {
	d.calls = append(d.calls, fmt.Sprintf("fragments %d", slide))
	if slide < 0 || slide >= len(d.slides) {
		return nil, fmt.Errorf("%w: no slide %d", ErrRuntimeUnavailable, slide)
	}
	return d.slides[slide], nil
}

func (d *fakeDeck) Jump(_ context.Context, slide int) error {
	d.calls = append(d.calls, fmt.Sprintf("jump %d", slide))
	if d.errJump != nil {
		return d.errJump
	}
	if slide < 0 || slide >= len(d.slides) {
		return fmt.Errorf("%w: no slide %d", ErrRuntimeUnavailable, slide)
	}
	prev := d.cur
	d.cur = slide
	d.step = 0
	if !d.keepOnJump {
		d.visible = 0
	}
	if prev != slide {
		d.staleReads = d.lag
	}
	return nil
}

func (d *fakeDeck) CurrentSlide(context.Context) (int, error) {
	if d.staleReads > 0 {
		d.staleReads--
		return -1, nil
	}
	return d.cur, nil
}

func (d *fakeDeck) NextFragment(context.Context) (bool, error) {
	d.calls = append(d.calls, "next")
	if d.errNext != nil {
		return false, d.errNext
	}
	if d.step >= countFragmentGroups(d.slides[d.cur]) {
		return false, nil
	}
	d.step++
	d.visible = d.step
	return true, nil
}

func (d *fakeDeck) HideFragments(context.Context) error {
	d.calls = append(d.calls, "hide")
	d.visible = 0
	return nil
}

// fakeScreen records the deck state at every capture.
type fakeScreen struct {
	deck  *fakeDeck
	png   []byte
	shots []state
	err   error
}

func (s *fakeScreen) Capture(_ context.Context, vp Viewport) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.shots = append(s.shots, state{slide: s.deck.cur, visible: s.deck.visible})
	return s.png, nil
}

// recordingSink keeps every frame it receives.
type recordingSink struct {
	frames []Frame
	err    error
}

func (s *recordingSink) AppendPage(f Frame) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, f)
	return nil
}

// testPNG returns an opaque w x h PNG filled with c.
func testPNG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding PNG: %v", err)
	}
	return buf.Bytes()
}

// ungrouped returns n fragment elements without a group index.
func ungrouped(n int) []string {
	return make([]string, n)
}
