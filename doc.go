// Package deckpdf exports a live reveal.js presentation to a PDF with one
// page per visible presentation state.
//
// The deck is loaded in headless Chrome (Chrome DevTools Protocol). Every
// slide is shown with its fragments hidden and captured, then each fragment
// group is revealed and captured in turn. The screenshots become PDF pages of
// exactly the viewport size, in traversal order:
//
//	res, err := deckpdf.Export(ctx, "http://localhost:8000/", deckpdf.WithNoSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = res.WriteToFile("exported.pdf", 0o644)
//
// For repeated exports create an [Exporter], which keeps the browser process:
//
//	e, err := deckpdf.NewExporter(
//	    deckpdf.WithViewport(deckpdf.FullHD),
//	    deckpdf.WithSettle(200*time.Millisecond, 500*time.Millisecond),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	res, err := e.Export(ctx, "http://localhost:8000/")
//
// A deck whose slides have fragment counts f0..fn-1 produces sum(fi+1)
// pages. Fragments that share a data-fragment-index reveal together and
// count as one step.
//
// [WithMode]([ModePrint]) instead prints the deck's ?print-pdf layout in one
// pass, without expanding fragments.
//
// The traversal itself works against the [Deck] and [Screen] interfaces, so
// [Orchestrator] and [Assembler] can be driven by other runtimes:
//
//	asm, _ := deckpdf.NewAssembler(vp)
//	defer asm.Close()
//	_, err := deckpdf.NewOrchestrator(deck, screen, deckpdf.WithViewport(vp)).Run(ctx, asm)
//	res, err := asm.Finalize()
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload].
package deckpdf
