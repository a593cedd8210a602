package deckpdf

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Exporter turns a live reveal.js presentation into a PDF.
//
// An Exporter owns a headless browser process. Exports are serialized: a
// second Export waits for the first to finish, since each run needs the
// presentation state to itself.
//
// Call [Exporter.Close] when the Exporter is no longer needed to release
// browser resources.
type Exporter struct {
	cfg           exporterConfig
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	run sync.Mutex // held for the duration of an export

	mu     sync.Mutex
	closed bool
}

// NewExporter creates an Exporter with the given options.
//
// It starts a headless browser in the background. The caller must call
// [Exporter.Close] when finished.
func NewExporter(opts ...Option) (*Exporter, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.chromePath == "" && cfg.autoDownload {
		path, err := resolveBrowser(cfg.logger)
		if err != nil {
			return nil, err
		}
		cfg.chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
		chromedp.WindowSize(cfg.viewport.Width, cfg.viewport.Height),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: starting browser: %w", ErrRuntimeUnavailable, err)
	}
	cfg.logger.Debug("deckpdf: browser started", "viewport", cfg.viewport.String())

	return &Exporter{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the Exporter, including the
// browser process. Close is idempotent.
func (e *Exporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.browserCancel()
	e.allocCancel()
	return nil
}

// Export loads the presentation at rawURL and returns it as a PDF.
//
// In [ModeCapture] the document has one page per slide plus one per
// fragment step. In [ModePrint] the deck's print layout is printed as-is.
func (e *Exporter) Export(ctx context.Context, rawURL string) (*Result, error) {
	if err := e.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("deckpdf: invalid URL %q: %w", rawURL, err)
	}

	e.run.Lock()
	defer e.run.Unlock()

	if e.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(e.browserCtx)
	defer tabCancel()
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	// The first Run allocates the tab; it must not carry a deadline or the
	// tab would close when the deadline passes.
	if err := chromedp.Run(tabCtx); err != nil {
		return nil, fmt.Errorf("%w: opening tab: %w", ErrRuntimeUnavailable, err)
	}

	switch e.cfg.mode {
	case ModePrint:
		return e.print(tabCtx, printURL(rawURL))
	default:
		return e.capture(tabCtx, rawURL)
	}
}

// capture runs the slide-by-slide traversal.
func (e *Exporter) capture(ctx context.Context, targetURL string) (*Result, error) {
	deck := revealDeck{}
	if err := e.load(ctx, deck, targetURL); err != nil {
		return nil, err
	}
	if !e.cfg.keepTransitions {
		if err := deck.disableTransitions(ctx); err != nil {
			return nil, err
		}
	}

	asm, err := NewAssembler(e.cfg.viewport)
	if err != nil {
		return nil, err
	}
	defer asm.Close()

	orch := newOrchestrator(deck, chromeScreen{}, e.cfg)
	if _, err := orch.Run(ctx, asm); err != nil {
		return nil, err
	}

	res, err := asm.Finalize()
	if err != nil {
		return nil, err
	}
	e.cfg.logger.Info("deckpdf: document assembled", "pages", res.Pages(), "bytes", res.Len())
	return res, nil
}

// print renders the deck's print layout with Chrome's PDF printer.
func (e *Exporter) print(ctx context.Context, targetURL string) (*Result, error) {
	if err := e.load(ctx, revealDeck{}, targetURL); err != nil {
		return nil, err
	}

	width, height := e.cfg.viewport.paperDimensions()

	var buf []byte
	if err := chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(0).
				WithMarginRight(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithPrintBackground(!e.cfg.transparent).
				Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("%w: printing: %w", ErrSinkFailure, err)
	}

	info, err := Inspect(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSinkFailure, err)
	}
	e.cfg.logger.Info("deckpdf: document printed", "pages", info.Pages, "bytes", len(buf))
	return &Result{data: buf, pages: info.Pages}, nil
}

// load sizes the surface, navigates to targetURL and waits until the
// network is idle and the presentation reports ready.
func (e *Exporter) load(ctx context.Context, deck revealDeck, targetURL string) error {
	e.cfg.logger.Info("deckpdf: loading", "url", targetURL)

	loadCtx, cancel := context.WithTimeout(ctx, e.cfg.loadTimeout)
	defer cancel()

	idle := listenNetworkIdle(loadCtx)
	err := chromedp.Run(loadCtx,
		e.emulate(),
		page.SetLifecycleEventsEnabled(true),
		chromedp.Navigate(targetURL),
	)
	if err == nil {
		select {
		case <-idle:
		case <-loadCtx.Done():
			err = loadCtx.Err()
		}
	}
	if err == nil {
		err = deck.waitReady(loadCtx)
	}
	if err == nil {
		return nil
	}

	if ctx.Err() == nil && errors.Is(loadCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s not ready after %s", ErrLoadTimeout, targetURL, e.cfg.loadTimeout)
	}
	return fmt.Errorf("%w: loading %s: %w", ErrRuntimeUnavailable, targetURL, err)
}

// emulate fixes the viewport and, if configured, clears the page background.
func (e *Exporter) emulate() chromedp.Tasks {
	vp := e.cfg.viewport
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(vp.Width), int64(vp.Height), chromedp.EmulateScale(1)),
	}
	if e.cfg.transparent {
		tasks = append(tasks, emulation.SetDefaultBackgroundColorOverride().
			WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}))
	}
	return tasks
}

func (e *Exporter) checkClosed() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return nil
}

// listenNetworkIdle returns a channel closed once the next main-frame
// navigation in ctx's tab reaches the networkIdle lifecycle event.
func listenNetworkIdle(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{})
	var (
		gate idleGate
		once sync.Once
	)
	chromedp.ListenTarget(ctx, func(ev any) {
		if gate.observe(ev) {
			once.Do(func() { close(ch) })
		}
	})
	return ch
}

// idleGate tracks the main frame's current document. Lifecycle events of
// child frames and of earlier documents are ignored.
type idleGate struct {
	mu     sync.Mutex
	frame  cdp.FrameID
	loader cdp.LoaderID
}

// observe consumes one target event and reports whether it is the
// networkIdle signal of the main frame's navigated document.
func (g *idleGate) observe(ev any) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch e := ev.(type) {
	case *page.EventFrameNavigated:
		if e.Frame != nil && e.Frame.ParentID == "" {
			g.frame, g.loader = e.Frame.ID, e.Frame.LoaderID
		}
	case *page.EventLifecycleEvent:
		return g.frame != "" && e.Name == "networkIdle" &&
			e.FrameID == g.frame && e.LoaderID == g.loader
	}
	return false
}

// printURL adds reveal.js's print-pdf switch to rawURL.
func printURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("print-pdf") {
		return rawURL
	}
	if u.RawQuery == "" {
		u.RawQuery = "print-pdf"
	} else {
		u.RawQuery += "&print-pdf"
	}
	return u.String()
}

// --- Package-level convenience functions ---

// Export loads the presentation at rawURL with a temporary [Exporter] and
// returns it as a PDF. The browser is released before Export returns.
func Export(ctx context.Context, rawURL string, opts ...Option) (*Result, error) {
	exp, err := NewExporter(opts...)
	if err != nil {
		return nil, err
	}
	defer exp.Close()
	return exp.Export(ctx, rawURL)
}
