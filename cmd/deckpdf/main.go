// deckpdf exports a live reveal.js presentation to PDF, one page per slide
// and fragment step.
//
// Usage:
//
//	deckpdf export [output.pdf]
//	deckpdf inspect <file.pdf>
//	deckpdf assets <manifest.json>
package main

import (
	"os"

	"github.com/porticus-lab/go-deck-pdf/cmd/deckpdf/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
