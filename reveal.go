package deckpdf

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Scripts run against the reveal.js API inside the tab. Slides are addressed
// by their position in Reveal.getSlides(), which flattens vertical stacks.
const (
	readyScript = `typeof Reveal !== 'undefined' && typeof Reveal.isReady === 'function' && Reveal.isReady()`

	totalSlidesScript = `Reveal.getTotalSlides()`

	fragmentIndicesScript = `(() => {
	const s = Reveal.getSlides()[%d];
	if (!s) throw new Error('no slide at index %d');
	return Array.from(s.querySelectorAll('.fragment'), el => el.getAttribute('data-fragment-index') || '');
})()`

	jumpScript = `(() => {
	const s = Reveal.getSlides()[%d];
	if (!s) throw new Error('no slide at index %d');
	const i = Reveal.getIndices(s);
	Reveal.slide(i.h, i.v || 0, -1);
	return true;
})()`

	currentSlideScript = `Reveal.getSlides().indexOf(Reveal.getCurrentSlide())`

	nextFragmentScript = `Reveal.nextFragment() === true`

	hideFragmentsScript = `(() => {
	const s = Reveal.getCurrentSlide();
	if (s) s.querySelectorAll('.fragment').forEach(el => el.classList.remove('visible', 'current-fragment'));
	return true;
})()`

	noTransitionsScript = `(() => {
	Reveal.configure({ transition: 'none', backgroundTransition: 'none' });
	return true;
})()`
)

// revealDeck implements [Deck] for a reveal.js presentation loaded in a
// chromedp tab. The context passed to each method must carry that tab.
type revealDeck struct{}

func (d revealDeck) TotalSlides(ctx context.Context) (int, error) {
	var n int
	if err := d.eval(ctx, totalSlidesScript, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (d revealDeck) FragmentIndices(ctx context.Context, slide int) ([]string, error) {
	var indices []string
	if err := d.eval(ctx, fmt.Sprintf(fragmentIndicesScript, slide, slide), &indices); err != nil {
		return nil, err
	}
	return indices, nil
}

func (d revealDeck) Jump(ctx context.Context, slide int) error {
	var ok bool
	return d.eval(ctx, fmt.Sprintf(jumpScript, slide, slide), &ok)
}

func (d revealDeck) CurrentSlide(ctx context.Context) (int, error) {
	var n int
	if err := d.eval(ctx, currentSlideScript, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (d revealDeck) NextFragment(ctx context.Context) (bool, error) {
	var ok bool
	if err := d.eval(ctx, nextFragmentScript, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (d revealDeck) HideFragments(ctx context.Context) error {
	var ok bool
	return d.eval(ctx, hideFragmentsScript, &ok)
}

// disableTransitions switches off slide and background transitions.
func (d revealDeck) disableTransitions(ctx context.Context) error {
	var ok bool
	return d.eval(ctx, noTransitionsScript, &ok)
}

// waitReady polls until the Reveal global exists and reports ready.
func (d revealDeck) waitReady(ctx context.Context) error {
	var ready bool
	return chromedp.Run(ctx, chromedp.Poll(readyScript, &ready, chromedp.WithPollingInterval(100*time.Millisecond)))
}

func (revealDeck) eval(ctx context.Context, script string, res any) error {
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, res)); err != nil {
		return fmt.Errorf("%w: %w", ErrRuntimeUnavailable, err)
	}
	return nil
}
