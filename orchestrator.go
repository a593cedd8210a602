package deckpdf

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Orchestrator walks every presentation state of a deck in order and feeds
// one captured frame per state to a [PageSink].
//
// States are visited in strictly increasing (slide, step) order. The number
// of frames is fixed by [Enumerate] before the first capture; a slide with n
// fragment groups contributes its base state plus n reveal steps.
type Orchestrator struct {
	deck           Deck
	nav            *Navigator
	capturer       *Capturer
	slideSettle    time.Duration
	fragmentSettle time.Duration
	logger         *slog.Logger
}

// NewOrchestrator returns an Orchestrator over d and s. Only the viewport,
// settle and logger options apply.
func NewOrchestrator(d Deck, s Screen, opts ...Option) *Orchestrator {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return newOrchestrator(d, s, cfg)
}

func newOrchestrator(d Deck, s Screen, cfg exporterConfig) *Orchestrator {
	return &Orchestrator{
		deck:           d,
		nav:            NewNavigator(d),
		capturer:       NewCapturer(s, cfg.viewport),
		slideSettle:    cfg.slideSettle,
		fragmentSettle: cfg.fragmentSettle,
		logger:         cfg.logger,
	}
}

// Run enumerates the deck and captures every state into sink. It stops at
// the first error; frames already appended are not valid output.
func (o *Orchestrator) Run(ctx context.Context, sink PageSink) ([]Slide, error) {
	slides, err := Enumerate(ctx, o.deck)
	if err != nil {
		return nil, err
	}
	total := TotalPages(slides)
	o.logger.Info("deckpdf: traversal planned", "slides", len(slides), "pages", total)

	page := 0
	for _, s := range slides {
		if err := o.enterSlide(ctx, s.Index); err != nil {
			return nil, err
		}
		if err := o.capture(ctx, sink, s.Index, 0); err != nil {
			return nil, err
		}
		page++
		o.logger.Info("deckpdf: captured", "page", page, "of", total, "slide", s.Index, "step", 0)

		for step := 1; step <= s.FragmentCount; step++ {
			ok, err := o.nav.RevealNextFragment(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				o.logger.Warn("deckpdf: no fragment left to reveal", "slide", s.Index, "step", step)
			}
			if err := sleep(ctx, o.fragmentSettle); err != nil {
				return nil, err
			}
			if err := o.capture(ctx, sink, s.Index, step); err != nil {
				return nil, err
			}
			page++
			o.logger.Info("deckpdf: captured", "page", page, "of", total, "slide", s.Index, "step", step)
		}
	}
	return slides, nil
}

// enterSlide jumps to the slide's base state and lets it settle.
func (o *Orchestrator) enterSlide(ctx context.Context, slide int) error {
	if err := o.nav.GotoSlide(ctx, slide); err != nil {
		return err
	}
	// Some runtimes keep fragment visibility across direct jumps.
	if err := o.nav.HideAllFragments(ctx); err != nil {
		return err
	}
	return sleep(ctx, o.slideSettle)
}

func (o *Orchestrator) capture(ctx context.Context, sink PageSink, slide, step int) error {
	buf, err := o.capturer.Capture(ctx)
	if err != nil {
		return fmt.Errorf("slide %d step %d: %w", slide, step, err)
	}
	if err := sink.AppendPage(Frame{Slide: slide, Step: step, PNG: buf}); err != nil {
		return fmt.Errorf("slide %d step %d: %w", slide, step, err)
	}
	return nil
}
