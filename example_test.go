package deckpdf_test

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	deckpdf "github.com/porticus-lab/go-deck-pdf"
)

func Example() {
	res, err := deckpdf.Export(context.Background(), "http://localhost:8000/",
		deckpdf.WithNoSandbox(),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := res.WriteToFile("exported.pdf", 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Exported %d pages\n", res.Pages())
}

func Example_exporter() {
	e, err := deckpdf.NewExporter(
		deckpdf.WithViewport(deckpdf.FullHD),
		deckpdf.WithSettle(200*time.Millisecond, 800*time.Millisecond),
		deckpdf.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
		deckpdf.WithNoSandbox(),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer e.Close()

	res, err := e.Export(context.Background(), "http://localhost:8000/")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d pages, %d bytes\n", res.Pages(), res.Len())
}

func Example_printMode() {
	res, err := deckpdf.Export(context.Background(), "http://localhost:8000/",
		deckpdf.WithMode(deckpdf.ModePrint),
		deckpdf.WithNoSandbox(),
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Printed PDF: %d bytes\n", res.Len())
}
